package conv

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	ftime "github.com/viant/tabconv/format/time"
)

var (
	impossibleDays = []string{"32", "31", "30", "29"}
	repairDays     = []string{"31", "30", "29", "28"}
)

// ToDateTime parses value into a time. Components missing from the text come
// from Options.Default. An impossible day such as 2/32/82 is repaired by
// clamping it down to the last valid day, 1982-02-28; text that is not a date
// at all yields ok == false without repair.
func ToDateTime(value interface{}, opts ...Option) (time.Time, bool) {
	return newOptions(opts).toDateTime(value)
}

// ToDate parses value like ToDateTime and keeps the date
func ToDate(value interface{}, opts ...Option) (civil.Date, bool) {
	ts, ok := newOptions(opts).toDateTime(value)
	if !ok {
		return civil.Date{}, false
	}
	return civil.DateOf(ts), true
}

// ToTime parses value like ToDateTime and keeps the time of day
func ToTime(value interface{}, opts ...Option) (civil.Time, bool) {
	ts, ok := newOptions(opts).toDateTime(value)
	if !ok {
		return civil.Time{}, false
	}
	return civil.TimeOf(ts), true
}

// FormatDateTime parses value like ToDateTime and renders it with format, a
// strftime (%Y-%m-%d), ISO (YYYY-MM-DD) or time layout
func FormatDateTime(value interface{}, format string, opts ...Option) (string, bool) {
	ts, ok := newOptions(opts).toDateTime(value)
	if !ok {
		return "", false
	}
	return ftime.Format(ts, format), true
}

// FormatDate renders the date part of value with format
func FormatDate(value interface{}, format string, opts ...Option) (string, bool) {
	date, ok := ToDate(value, opts...)
	if !ok {
		return "", false
	}
	return ftime.Format(date.In(time.UTC), format), true
}

// FormatTime renders the time of day of value with format; date directives
// render 1900-01-01
func FormatTime(value interface{}, format string, opts ...Option) (string, bool) {
	clock, ok := ToTime(value, opts...)
	if !ok {
		return "", false
	}
	ts := time.Date(1900, time.January, 1, clock.Hour, clock.Minute, clock.Second, clock.Nanosecond, time.UTC)
	return ftime.Format(ts, format), true
}

func (o *Options) toDateTime(value interface{}) (time.Time, bool) {
	switch actual := value.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return actual, true
	case *time.Time:
		if actual == nil {
			return time.Time{}, false
		}
		return *actual, true
	case civil.DateTime:
		return actual.In(o.location()), true
	case civil.Date:
		return actual.In(o.location()), true
	}
	text, ok := asText(value)
	if !ok {
		o.debug("unsupported datetime input", slog.String("type", fmt.Sprintf("%T", value)))
		return time.Time{}, false
	}
	if o.layout != "" {
		if ts, err := ftime.ParseLayout(o.layout, text); err == nil {
			return ts, true
		}
	}
	parser := &ftime.Parser{Default: o.Default, DayFirst: o.DayFirst, Reference: o.Reference}
	for _, candidate := range repairCandidates(text) {
		ts, err := parser.Parse(candidate)
		if err == nil {
			if candidate != text {
				o.debug("repaired impossible date", slog.String("value", text), slog.String("repaired", candidate))
			}
			return ts, true
		}
		if !errors.Is(err, ftime.ErrImpossibleDate) {
			o.debug("unparseable datetime", slog.String("value", text), slog.Any("error", err))
			return time.Time{}, false
		}
	}
	o.debug("unrepairable datetime", slog.String("value", text))
	return time.Time{}, false
}

func (o *Options) location() *time.Location {
	if o.Default.IsZero() {
		return time.UTC
	}
	return o.Default.Location()
}

// repairCandidates returns value followed by copies in which the first
// impossible day found as a whole number (32 down to 29) is replaced by each
// smaller day from 31 down to 28
func repairCandidates(value string) []string {
	candidates := []string{value}
	for i, day := range impossibleDays {
		if _, found := replaceNumber(value, day, day); !found {
			continue
		}
		for _, repaired := range repairDays[i:] {
			candidate, _ := replaceNumber(value, day, repaired)
			candidates = append(candidates, candidate)
		}
		break
	}
	return candidates
}

// replaceNumber replaces each whole number equal to old, so a day of 30 is not
// matched inside a year such as 2030
func replaceNumber(value, old, replacement string) (string, bool) {
	var result strings.Builder
	found := false
	offset := 0
	for offset < len(value) {
		index := strings.Index(value[offset:], old)
		if index == -1 {
			break
		}
		start := offset + index
		end := start + len(old)
		if (start > 0 && isDigit(rune(value[start-1]))) || (end < len(value) && isDigit(rune(value[end]))) {
			result.WriteString(value[offset : start+1])
			offset = start + 1
			continue
		}
		result.WriteString(value[offset:start])
		result.WriteString(replacement)
		offset = end
		found = true
	}
	if !found {
		return value, false
	}
	result.WriteString(value[offset:])
	return result.String(), true
}
