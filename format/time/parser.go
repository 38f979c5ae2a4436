package time

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = []string{"january", "february", "march", "april", "may", "june", "july",
	"august", "september", "october", "november", "december"}

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var skipWords = map[string]bool{
	"t": true, "at": true, "on": true, "of": true, "the": true, "and": true,
	"st": true, "nd": true, "rd": true, "th": true,
}

var zoneWords = map[string]bool{"z": true, "utc": true, "gmt": true}

// zoneAbbreviations maps common North American zone names to UTC offsets in hours
var zoneAbbreviations = map[string]int{
	"est": -5, "edt": -4, "cst": -6, "cdt": -5,
	"mst": -7, "mdt": -6, "pst": -8, "pdt": -7,
}

// DefaultDateTime returns 9999-12-31 00:00:00 UTC, the datetime that supplies
// components missing from parsed text unless a parser overrides it.
func DefaultDateTime() time.Time {
	return time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// Parser parses loosely formatted date and time text.
type Parser struct {
	// Default supplies every component the text does not specify.
	Default time.Time
	// DayFirst reads an ambiguous 1/2/2000 as the first of February.
	DayFirst bool
	// Reference anchors two digit years; zero means the current time.
	Reference time.Time
}

// NewParser creates a parser filling missing components from DefaultDateTime
func NewParser() *Parser {
	return &Parser{Default: DefaultDateTime()}
}

type ymdValue struct {
	value  int
	digits int
	year   bool
}

func (v ymdValue) isYear() bool {
	return v.year || v.value > 31 || v.digits >= 3
}

type components struct {
	ymd      []ymdValue
	month    int
	hour     int
	minute   int
	second   int
	nanos    int
	hasTime  bool
	location *time.Location
}

// Parse parses value. It returns an error wrapping ErrImpossibleDate when the
// text describes a date with an out of range component, and one wrapping
// ErrUnparseable when the text cannot be read as a date.
func (p *Parser) Parse(value string) (time.Time, error) {
	c, err := p.scan(tokenize(value))
	if err != nil {
		return time.Time{}, err
	}
	if len(c.ymd) == 0 && c.month == 0 && !c.hasTime {
		return time.Time{}, fmt.Errorf("%w: %q has no date components", ErrUnparseable, value)
	}
	return p.build(c)
}

func (p *Parser) scan(tokens []token) (*components, error) {
	c := &components{}
	zoneAllowed := false
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch tok.code {
		case whitespaceToken:
			continue
		case numberToken:
			n, err := strconv.Atoi(tok.text)
			if err != nil {
				return nil, fmt.Errorf("%w: number %q: %v", ErrUnparseable, tok.text, err)
			}
			if isTimeAt(tokens, i) {
				if c.hasTime {
					return nil, fmt.Errorf("%w: repeated time at %q", ErrUnparseable, tok.text)
				}
				i = c.scanTime(tokens, i, n)
				zoneAllowed = true
				continue
			}
			zoneAllowed = false
			if j := nextSignificant(tokens, i); j != -1 && !c.hasTime && n <= 12 &&
				tokens[j].code == wordToken && isMeridiem(strings.ToLower(tokens[j].text)) {
				c.hour, c.hasTime = n, true
				continue
			}
			if len(tok.text) == 8 && len(c.ymd) == 0 && c.month == 0 {
				y, _ := strconv.Atoi(tok.text[:4])
				m, _ := strconv.Atoi(tok.text[4:6])
				d, _ := strconv.Atoi(tok.text[6:])
				c.ymd = append(c.ymd, ymdValue{value: y, digits: 4}, ymdValue{value: m, digits: 2}, ymdValue{value: d, digits: 2})
				continue
			}
			if len(tok.text) == 6 && len(c.ymd) == 0 && c.month == 0 {
				y, _ := strconv.Atoi(tok.text[:2])
				m, _ := strconv.Atoi(tok.text[2:4])
				d, _ := strconv.Atoi(tok.text[4:])
				c.ymd = append(c.ymd, ymdValue{value: y, digits: 2, year: true}, ymdValue{value: m, digits: 2}, ymdValue{value: d, digits: 2})
				continue
			}
			if len(tok.text) > 4 {
				return nil, fmt.Errorf("%w: number %q", ErrUnparseable, tok.text)
			}
			if len(c.ymd) == 3 {
				return nil, fmt.Errorf("%w: too many date numbers at %q", ErrUnparseable, tok.text)
			}
			c.ymd = append(c.ymd, ymdValue{value: n, digits: len(tok.text)})
		case wordToken:
			word := strings.ToLower(tok.text)
			isZone := false
			switch {
			case isMeridiem(word):
				if !c.hasTime || c.hour > 12 {
					return nil, fmt.Errorf("%w: %q without hour", ErrUnparseable, tok.text)
				}
				if word == "pm" && c.hour < 12 {
					c.hour += 12
				} else if word == "am" && c.hour == 12 {
					c.hour = 0
				}
			case monthOf(word) > 0:
				if c.month != 0 {
					return nil, fmt.Errorf("%w: repeated month %q", ErrUnparseable, tok.text)
				}
				c.month = monthOf(word)
			case isWeekday(word), skipWords[word]:
			case zoneWords[word]:
				c.location = time.UTC
				isZone = true
			case zoneAbbreviations[word] != 0:
				c.location = time.FixedZone(strings.ToUpper(word), zoneAbbreviations[word]*3600)
				isZone = true
			default:
				return nil, fmt.Errorf("%w: unknown token %q", ErrUnparseable, tok.text)
			}
			zoneAllowed = isZone
		case symbolToken:
			switch tok.text {
			case "+", "-":
				if zoneAllowed && i+1 < len(tokens) && tokens[i+1].code == numberToken {
					next, err := c.scanOffset(tokens, i)
					if err != nil {
						return nil, err
					}
					i = next
					zoneAllowed = false
				}
			case "/", ".", ",", ":", "(", ")":
			default:
				return nil, fmt.Errorf("%w: unexpected %q", ErrUnparseable, tok.text)
			}
		}
	}
	return c, nil
}

// scanTime reads hh:mm[:ss[.fraction]] starting at i and returns the index of
// the last consumed token
func (c *components) scanTime(tokens []token, i int, hour int) int {
	c.hour, c.hasTime = hour, true
	c.minute, _ = strconv.Atoi(tokens[i+2].text)
	i += 2
	if isTimeAt(tokens, i) {
		c.second, _ = strconv.Atoi(tokens[i+2].text)
		i += 2
		if i+2 < len(tokens) && tokens[i+1].text == "." && tokens[i+2].code == numberToken {
			c.nanos = fraction(tokens[i+2].text)
			i += 2
		}
	}
	return i
}

// scanOffset reads a numeric zone offset (+hh, +hh:mm, +hhmm) starting at the sign
func (c *components) scanOffset(tokens []token, i int) (int, error) {
	sign := 1
	if tokens[i].text == "-" {
		sign = -1
	}
	i++
	text := tokens[i].text
	hours, minutes := 0, 0
	switch len(text) {
	case 1, 2:
		hours, _ = strconv.Atoi(text)
		if isTimeAt(tokens, i) {
			minutes, _ = strconv.Atoi(tokens[i+2].text)
			i += 2
		}
	case 4:
		hours, _ = strconv.Atoi(text[:2])
		minutes, _ = strconv.Atoi(text[2:])
	default:
		return i, fmt.Errorf("%w: zone offset %q", ErrUnparseable, text)
	}
	if hours > 14 || minutes > 59 {
		return i, fmt.Errorf("%w: zone offset %q", ErrImpossibleDate, text)
	}
	c.location = time.FixedZone("", sign*(hours*3600+minutes*60))
	return i, nil
}

func (p *Parser) build(c *components) (time.Time, error) {
	def := p.Default
	if def.IsZero() {
		def = DefaultDateTime()
	}
	year, yearDigits, month, day, err := p.resolve(c)
	if err != nil {
		return time.Time{}, err
	}
	if year == -1 {
		year = def.Year()
	} else if yearDigits <= 2 {
		year = p.fullYear(year)
	}
	if month == -1 {
		month = int(def.Month())
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: month %d out of range", ErrImpossibleDate, month)
	}
	lastDay := daysIn(year, month)
	if day == -1 {
		day = min(def.Day(), lastDay)
	} else if day < 1 || day > lastDay {
		return time.Time{}, fmt.Errorf("%w: day %d out of range for month %d", ErrImpossibleDate, day, month)
	}
	hour, minute, second, nanos := def.Hour(), def.Minute(), def.Second(), def.Nanosecond()
	if c.hasTime {
		hour, minute, second, nanos = c.hour, c.minute, c.second, c.nanos
		if hour > 23 || minute > 59 || second > 59 {
			return time.Time{}, fmt.Errorf("%w: time %02d:%02d:%02d out of range", ErrImpossibleDate, hour, minute, second)
		}
	}
	location := def.Location()
	if c.location != nil {
		location = c.location
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, nanos, location), nil
}

// resolve assigns the collected numbers to year, month and day; -1 marks a
// component absent from the text
func (p *Parser) resolve(c *components) (year, yearDigits, month, day int, err error) {
	year, month, day = -1, -1, -1
	values := c.ymd
	if c.month > 0 {
		month = c.month
		switch len(values) {
		case 0:
		case 1:
			if values[0].isYear() {
				year, yearDigits = values[0].value, values[0].digits
			} else {
				day = values[0].value
			}
		case 2:
			if values[0].isYear() {
				year, yearDigits, day = values[0].value, values[0].digits, values[1].value
			} else {
				day, year, yearDigits = values[0].value, values[1].value, values[1].digits
			}
		default:
			err = fmt.Errorf("%w: too many numbers around month name", ErrUnparseable)
		}
		return
	}
	switch len(values) {
	case 0:
	case 1:
		if values[0].isYear() {
			year, yearDigits = values[0].value, values[0].digits
		} else {
			day = values[0].value
		}
	case 2:
		a, b := values[0], values[1]
		switch {
		case a.isYear():
			year, yearDigits, month = a.value, a.digits, b.value
		case b.isYear():
			month, year, yearDigits = a.value, b.value, b.digits
		case (a.value > 12 || p.DayFirst) && b.value <= 12:
			day, month = a.value, b.value
		default:
			month, day = a.value, b.value
		}
	case 3:
		a, b, v := values[0], values[1], values[2]
		switch {
		case a.isYear():
			year, yearDigits = a.value, a.digits
			if b.value > 12 {
				day, month = b.value, v.value
			} else {
				month, day = b.value, v.value
			}
		case a.value > 12 || (p.DayFirst && b.value <= 12):
			day, month, year, yearDigits = a.value, b.value, v.value, v.digits
		default:
			month, day, year, yearDigits = a.value, b.value, v.value, v.digits
		}
	}
	return
}

// fullYear places a two digit year in the century within 50 years of the reference
func (p *Parser) fullYear(year int) int {
	reference := p.Reference
	if reference.IsZero() {
		reference = time.Now()
	}
	current := reference.Year()
	year += current / 100 * 100
	if year >= current+50 {
		year -= 100
	} else if year < current-50 {
		year += 100
	}
	return year
}

func daysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isTimeAt(tokens []token, i int) bool {
	return i+2 < len(tokens) && tokens[i+1].text == ":" && tokens[i+2].code == numberToken
}

func nextSignificant(tokens []token, i int) int {
	for j := i + 1; j < len(tokens); j++ {
		if tokens[j].code != whitespaceToken {
			return j
		}
	}
	return -1
}

func isMeridiem(word string) bool {
	return word == "am" || word == "pm"
}

func monthOf(word string) int {
	if word == "sept" {
		return 9
	}
	if len(word) < 3 {
		return 0
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, word) {
			return i + 1
		}
	}
	return 0
}

func isWeekday(word string) bool {
	if len(word) < 3 {
		return false
	}
	for _, name := range weekdayNames {
		if strings.HasPrefix(name, word) {
			return true
		}
	}
	return false
}

func fraction(text string) int {
	if len(text) > 9 {
		text = text[:9]
	}
	n, _ := strconv.Atoi(text + strings.Repeat("0", 9-len(text)))
	return n
}
