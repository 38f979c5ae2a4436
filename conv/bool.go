package conv

import (
	"reflect"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// ToBool coerces value into bool. Strings are lower cased and looked up in
// Options.Trues; any other string is false. Non string values follow Go
// truthiness: non zero numbers and non empty collections are true, nil is false.
func ToBool(value interface{}, opts ...Option) bool {
	return newOptions(opts).toBool(value)
}

func (o *Options) toBool(value interface{}) bool {
	if text, ok := boolText(value); ok {
		return slices.Contains(o.Trues, strings.ToLower(text))
	}
	return truthy(value)
}

// ParseBool is the strict form of ToBool: a string found in neither
// Options.Trues nor Options.Falses, and nil, yield ok == false.
func ParseBool(value interface{}, opts ...Option) (bool, bool) {
	return newOptions(opts).parseBool(value)
}

func (o *Options) parseBool(value interface{}) (bool, bool) {
	if value == nil {
		return false, false
	}
	text, ok := boolText(value)
	if !ok {
		return truthy(value), true
	}
	text = strings.ToLower(text)
	switch {
	case slices.Contains(o.Trues, text):
		return true, true
	case slices.Contains(o.Falses, text):
		return false, true
	}
	return false, false
}

func boolText(value interface{}) (string, bool) {
	switch actual := value.(type) {
	case string:
		return actual, true
	case []byte:
		return string(actual), true
	}
	return "", false
}

func truthy(value interface{}) bool {
	switch actual := value.(type) {
	case nil:
		return false
	case bool:
		return actual
	case decimal.Decimal:
		return !actual.IsZero()
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rValue.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rValue.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rValue.Float() != 0
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rValue.Len() > 0
	case reflect.Ptr, reflect.Interface, reflect.Func:
		return !rValue.IsNil()
	}
	return true
}
