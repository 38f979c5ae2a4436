package format

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/viant/parsly"
	ftime "github.com/viant/tabconv/format/time"
)

const (
	TagName = "tabconv"
)

// Tag represents per field coercion settings, e.g.
//
//	Price float64 `tabconv:"price,thousandSep=.,decimalSep={,}"`
//	Since time.Time `tabconv:"name=since,dateFormat=YYYY-MM-DD"`
type Tag struct {
	Name string

	DateFormat string
	TimeLayout string
	DayFirst   bool

	ThousandSep rune
	DecimalSep  rune
	Places      *int
	RoundDown   bool

	Omitempty bool
	Ignore    bool
}

func (t *Tag) update(key string, value string, strictMode bool) error {
	switch strings.ToLower(key) {
	case "name":
		t.Name = value
	case "dateformat", "isodateformat", "iso20220715":
		t.DateFormat = value
		t.TimeLayout = ftime.DateFormatToTimeLayout(value)
	case "timelayout", "datelayout", "rfc3339":
		t.TimeLayout = value
	case "strftime":
		t.DateFormat = value
		t.TimeLayout = ftime.StrftimeToTimeLayout(value)
	case "dayfirst":
		t.DayFirst = value == "" || value == "true"
	case "thousandsep", "thousandseparator":
		r, err := separator(key, value)
		if err != nil {
			return err
		}
		t.ThousandSep = r
	case "decimalsep", "decimalseparator":
		r, err := separator(key, value)
		if err != nil {
			return err
		}
		t.DecimalSep = r
	case "places", "scale":
		places, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %v: %q: %w", key, value, err)
		}
		t.Places = &places
	case "rounddown":
		t.RoundDown = true
	case "omitempty":
		t.Omitempty = true
	case "ignore", "-", "transient":
		t.Ignore = true
	default:
		if strictMode {
			return fmt.Errorf("unknown key %v", key)
		}
	}
	return nil
}

func separator(key, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("invalid %v: %q, expected single character", key, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}

// Parse parses the tabconv tag, falling back to names (e.g. json, csv) for the field name
func Parse(tag reflect.StructTag, names ...string) (*Tag, error) {
	ret := &Tag{}

	names = append([]string{TagName}, names...)
	for i, name := range names {
		encoded, ok := tag.Lookup(name)
		if !ok {
			continue
		}
		switch encoded {
		case "-":
			ret.Ignore = true
			continue
		}
		cursor := parsly.NewCursor("", []byte(encoded), 0)
		for pos := 0; cursor.Pos < len(cursor.Input); pos++ {
			key, value, hasValue := matchPair(cursor)
			if key == "" {
				break
			}
			if pos == 0 && !hasValue && !isFlag(key) {
				if ret.Name == "" {
					ret.Name = key
				}
				continue
			}
			if i > 0 && key != "omitempty" {
				continue
			}
			if err := ret.update(key, value, i == 0); err != nil {
				return nil, err
			}
		}
	}
	return ret, nil
}

// ParseTime parses value with the tag layout
func (t *Tag) ParseTime(value string) (time.Time, error) {
	return ftime.ParseLayout(t.TimeLayout, value)
}

// FormatTime formats ts with the tag layout
func (t *Tag) FormatTime(ts time.Time) string {
	if t.TimeLayout == "" {
		return ts.Format(time.RFC3339)
	}
	return ts.Format(t.TimeLayout)
}

func isFlag(key string) bool {
	switch strings.ToLower(key) {
	case "omitempty", "ignore", "-", "transient", "rounddown", "dayfirst":
		return true
	}
	return false
}

func matchPair(cursor *parsly.Cursor) (string, string, bool) {
	var tokens = []*parsly.Token{scopeBlockMatcher}
	eqIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], '=')
	comaIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], ',')
	if eqIndex != -1 && (comaIndex == -1 || eqIndex < comaIndex) {
		tokens = append(tokens, eqTerminatorMatcher)
	} else {
		tokens = append(tokens, comaTerminatorMatcher)
	}

	match := cursor.MatchAny(tokens...)
	switch match.Code {
	case comaTerminatorToken:
		key := match.Text(cursor)
		return key[:len(key)-1], "", false
	case eqTerminatorToken:
		key := match.Text(cursor)
		key = key[:len(key)-1]
		value := ""
		match = cursor.MatchAny(scopeBlockMatcher, quotedMatcher, comaTerminatorMatcher)
		switch match.Code {
		case scopeBlockToken, quotedToken:
			value = match.Text(cursor)
			value = value[1 : len(value)-1]
			cursor.MatchAny(comaTerminatorMatcher)
		case comaTerminatorToken:
			value = match.Text(cursor)
			value = value[:len(value)-1]
		default:
			if cursor.Pos < len(cursor.Input) {
				value = string(cursor.Input[cursor.Pos:])
				cursor.Pos = len(cursor.Input)
			}
		}
		return key, value, true
	}
	key := ""
	if cursor.Pos < len(cursor.Input) {
		key = string(cursor.Input[cursor.Pos:])
		cursor.Pos = len(cursor.Input)
	}
	return key, "", false
}
