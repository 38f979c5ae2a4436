package time

import (
	"strings"
	"time"
)

var iso20220715DateFormatToRfc3339TimeLayoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"M", "1",
	"DD", "02",
	"D", "2",
	"+hh:mm", "Z07:00",
	"+hhmm", "Z0700",
	"+hh", "Z07",
	"-hh:mm", "Z07:00",
	"-hhmm", "Z0700",
	"hh", "15",
	"mm", "04",
	"m", "4",
	"ss", "05",
	".SSS", ".999",
	".SS", ".99",
	".S", ".9",
	"-hh", "Z07",
	"Z", "Z07:00",
)

var strftimeToTimeLayoutReplacer = strings.NewReplacer(
	"%%", "%",
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%-m", "1",
	"%d", "02",
	"%-d", "2",
	"%e", "_2",
	"%H", "15",
	"%-H", "15", // no unpadded 24 hour layout, rendered padded
	"%I", "03",
	"%-I", "3",
	"%M", "04",
	"%-M", "4",
	"%S", "05",
	"%-S", "5",
	".%f", ".000000",
	"%p", "PM",
	"%b", "Jan",
	"%h", "Jan",
	"%B", "January",
	"%a", "Mon",
	"%A", "Monday",
	"%j", "002",
	"%z", "-0700",
	"%Z", "MST",
	"%F", "2006-01-02",
	"%T", "15:04:05",
	"%D", "01/02/06",
	"%R", "15:04",
)

// DateFormatToTimeLayout converts ISO 2022-07-15 date format to RFC3339 time layout
func DateFormatToTimeLayout(dateFormat string) string {
	return iso20220715DateFormatToRfc3339TimeLayoutReplacer.Replace(dateFormat)
}

// StrftimeToTimeLayout converts C strftime directives (%Y-%m-%d) to a time layout
func StrftimeToTimeLayout(format string) string {
	return strftimeToTimeLayoutReplacer.Replace(format)
}

// Layout resolves format into a time layout. Formats with % directives are
// treated as strftime, formats with YYYY as ISO date formats, anything else as
// a time layout already.
func Layout(format string) string {
	switch {
	case format == "":
		return time.RFC3339
	case strings.Contains(format, "%"):
		return StrftimeToTimeLayout(format)
	case strings.Contains(format, "YYYY") || strings.Contains(format, "DD"):
		return DateFormatToTimeLayout(format)
	}
	return format
}

// Format renders ts with format resolved by Layout
func Format(ts time.Time, format string) string {
	return ts.Format(Layout(format))
}

// ParseLayout parses value with an explicit layout, tolerating a T/space
// mismatch and a value that is longer or shorter than the layout.
func ParseLayout(layout, value string) (time.Time, error) {
	if layout == "" {
		layout = time.RFC3339
	}
	//adjust T fragment
	if strings.Contains(value, "T") != strings.Contains(layout, "T") {
		layout = strings.Replace(layout, "T", " ", 1)
		value = strings.Replace(value, "T", " ", 1)
	}
	t, err := time.ParseInLocation(layout, value, time.UTC)
	if err != nil {
		if len(value) > len(layout) {
			value = value[:len(layout)]
			t, err = time.ParseInLocation(layout, value, time.UTC)
		} else {
			layout = layout[:len(value)]
			t, err = time.ParseInLocation(layout, value, time.UTC)
		}
	}
	return t, err
}
