package conv

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Normalize strips the thousands separator from value, replaces the decimal
// separator with '.' and drops anything that cannot be part of a number, such
// as currency glyphs, e.g. Normalize("2.123,45 €", '.', ',') returns "2123.45".
func Normalize(value string, thousandSep, decimalSep rune) string {
	runes := []rune(value)
	var result strings.Builder
	result.Grow(len(value))
	for i, r := range runes {
		switch {
		case thousandSep != 0 && r == thousandSep:
		case decimalSep != 0 && r == decimalSep:
			result.WriteByte('.')
		case r == 'e' || r == 'E':
			if isExponent(runes, i) {
				result.WriteRune(r)
			}
		case isNumeric(r), r == '.' && decimalSep == 0:
			result.WriteRune(r)
		}
	}
	return result.String()
}

func isNumeric(r rune) bool {
	if r == '+' || r == '-' {
		return true
	}
	return isDigit(r)
}

// isExponent reports an e/E placed between a digit and a digit or sign
func isExponent(runes []rune, i int) bool {
	if i == 0 || i+1 == len(runes) || !isDigit(runes[i-1]) {
		return false
	}
	next := runes[i+1]
	return isDigit(next) || next == '+' || next == '-'
}

func isDigit(r rune) bool {
	return r < unicode.MaxASCII && unicode.IsDigit(r)
}

// ToFloat coerces value into float64, e.g. "$2,123.45" becomes 2123.45.
// It returns ok == false for nil or unparseable input.
func ToFloat(value interface{}, opts ...Option) (float64, bool) {
	return newOptions(opts).toFloat(value)
}

// ToInt coerces value into int64, truncating any fraction toward zero.
// It returns ok == false for nil, unparseable or out of range input.
func ToInt(value interface{}, opts ...Option) (int64, bool) {
	return newOptions(opts).toInt(value)
}

// ToDecimal coerces value into a decimal quantized to Options.Places, rounding
// half up by default or half down with WithRoundUp(false).
// It returns ok == false for nil or unparseable input.
func ToDecimal(value interface{}, opts ...Option) (decimal.Decimal, bool) {
	return newOptions(opts).toDecimal(value)
}

func (o *Options) toFloat(value interface{}) (float64, bool) {
	if value == nil {
		return 0, false
	}
	if f, ok := nativeFloat(value); ok {
		return f, true
	}
	text, ok := asText(value)
	if !ok {
		o.debug("unsupported float input", slog.String("type", fmt.Sprintf("%T", value)))
		return 0, false
	}
	f, err := strconv.ParseFloat(Normalize(text, o.ThousandSep, o.DecimalSep), 64)
	if err != nil {
		o.debug("unparseable float", slog.String("value", text), slog.Any("error", err))
		return 0, false
	}
	return f, true
}

func (o *Options) toInt(value interface{}) (int64, bool) {
	switch actual := value.(type) {
	case nil:
		return 0, false
	case int:
		return int64(actual), true
	case int64:
		return actual, true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rValue.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rValue.Uint() > math.MaxInt64 {
			return 0, false
		}
		return int64(rValue.Uint()), true
	}
	if text, ok := asText(value); ok {
		if n, err := strconv.ParseInt(Normalize(text, o.ThousandSep, o.DecimalSep), 10, 64); err == nil {
			return n, true
		}
	}
	f, ok := o.toFloat(value)
	if !ok {
		return 0, false
	}
	f = math.Trunc(f)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		o.debug("int out of range", slog.Float64("value", f))
		return 0, false
	}
	return int64(f), true
}

func (o *Options) toDecimal(value interface{}) (decimal.Decimal, bool) {
	var d decimal.Decimal
	switch actual := value.(type) {
	case nil:
		return decimal.Decimal{}, false
	case decimal.Decimal:
		d = actual
	case float64:
		if math.IsNaN(actual) || math.IsInf(actual, 0) {
			return decimal.Decimal{}, false
		}
		d = decimal.NewFromFloat(actual)
	case float32:
		if math.IsNaN(float64(actual)) || math.IsInf(float64(actual), 0) {
			return decimal.Decimal{}, false
		}
		d = decimal.NewFromFloat32(actual)
	default:
		if n, ok := nativeInt(value); ok {
			d = decimal.NewFromInt(n)
			break
		}
		text, ok := asText(value)
		if !ok {
			o.debug("unsupported decimal input", slog.String("type", fmt.Sprintf("%T", value)))
			return decimal.Decimal{}, false
		}
		var err error
		if d, err = decimal.NewFromString(Normalize(text, o.ThousandSep, o.DecimalSep)); err != nil {
			o.debug("unparseable decimal", slog.String("value", text), slog.Any("error", err))
			return decimal.Decimal{}, false
		}
	}
	return Quantize(d, o.Places, o.RoundUp), true
}

// Quantize rounds d to places fractional digits, half away from zero when
// roundUp is set and half toward zero otherwise. The result always carries
// exactly places fractional digits.
func Quantize(d decimal.Decimal, places int, roundUp bool) decimal.Decimal {
	exp := int32(max(places, 0))
	if roundUp {
		return d.Round(exp)
	}
	truncated := d.Truncate(exp)
	if d.Sub(truncated).Abs().GreaterThan(decimal.New(5, -(exp + 1))) {
		return d.Round(exp)
	}
	return truncated.Round(exp)
}

func nativeFloat(value interface{}) (float64, bool) {
	switch actual := value.(type) {
	case float64:
		return actual, true
	case bool:
		if actual {
			return 1, true
		}
		return 0, true
	case decimal.Decimal:
		return actual.InexactFloat64(), true
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rValue.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rValue.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rValue.Float(), true
	}
	return 0, false
}

func nativeInt(value interface{}) (int64, bool) {
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rValue.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rValue.Uint() > math.MaxInt64 {
			return 0, false
		}
		return int64(rValue.Uint()), true
	case reflect.Bool:
		if rValue.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// asText returns the textual form of string like values
func asText(value interface{}) (string, bool) {
	switch actual := value.(type) {
	case string:
		return actual, true
	case []byte:
		return string(actual), true
	case fmt.Stringer:
		return actual.String(), true
	}
	rValue := reflect.ValueOf(value)
	if rValue.Kind() == reflect.String {
		return rValue.String(), true
	}
	return "", false
}
