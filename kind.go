package tabconv

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/viant/tabconv/conv"
)

// ValueKind classifies record values for serialization
type ValueKind int

const (
	// KindPlain covers nil, strings, booleans and numbers
	KindPlain ValueKind = iota
	// KindDecimal covers decimal.Decimal, rendered as fixed point text
	KindDecimal
	// KindDateLike covers time.Time and civil values, rendered as text
	KindDateLike
	// KindCollection covers slices, arrays, sets and sequences, rendered as lists
	KindCollection
)

// String returns the kind name
func (k ValueKind) String() string {
	switch k {
	case KindDecimal:
		return "decimal"
	case KindDateLike:
		return "date"
	case KindCollection:
		return "collection"
	}
	return "plain"
}

// KindOf returns the kind of value
func KindOf(value interface{}) ValueKind {
	switch value.(type) {
	case nil, string, []byte, bool:
		return KindPlain
	case decimal.Decimal, *decimal.Decimal:
		return KindDecimal
	case time.Time, *time.Time, civil.Date, civil.Time, civil.DateTime:
		return KindDateLike
	case iter.Seq[interface{}]:
		return KindCollection
	}
	rType := reflect.TypeOf(value)
	switch rType.Kind() {
	case reflect.Slice, reflect.Array:
		return KindCollection
	case reflect.Map:
		if isSet(rType) {
			return KindCollection
		}
	}
	return KindPlain
}

// isSet reports whether t is a map used as a set, map[K]struct{} or map[K]bool
func isSet(t reflect.Type) bool {
	elem := t.Elem()
	return (elem.Kind() == reflect.Struct && elem.NumField() == 0) || elem.Kind() == reflect.Bool
}

// Text renders a decimal or date-like value as text
func (o *Options) Text(value interface{}) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return actual
	case []byte:
		return string(actual)
	case decimal.Decimal:
		return conv.DecimalString(actual)
	case *decimal.Decimal:
		if actual == nil {
			return ""
		}
		return conv.DecimalString(*actual)
	case time.Time:
		return actual.Format(o.TimeLayout)
	case *time.Time:
		if actual == nil {
			return ""
		}
		return actual.Format(o.TimeLayout)
	case civil.Date:
		return actual.String()
	case civil.Time:
		return actual.String()
	case civil.DateTime:
		return actual.Date.String() + " " + actual.Time.String()
	}
	if KindOf(value) == KindCollection {
		items := Items(value)
		texts := make([]string, len(items))
		for i, item := range items {
			texts[i] = o.Text(item)
		}
		return fmt.Sprint(texts)
	}
	return fmt.Sprint(value)
}

// Items lists the elements of a collection value; set members are sorted by
// their text form
func Items(value interface{}) []interface{} {
	if seq, ok := value.(iter.Seq[interface{}]); ok {
		var ret []interface{}
		for item := range seq {
			ret = append(ret, item)
		}
		return ret
	}
	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Array:
		ret := make([]interface{}, rValue.Len())
		for i := range ret {
			ret[i] = rValue.Index(i).Interface()
		}
		return ret
	case reflect.Map:
		ret := make([]interface{}, 0, rValue.Len())
		entries := rValue.MapRange()
		for entries.Next() {
			if entries.Value().Kind() == reflect.Bool && !entries.Value().Bool() {
				continue
			}
			ret = append(ret, entries.Key().Interface())
		}
		sort.Slice(ret, func(i, j int) bool {
			return fmt.Sprint(ret[i]) < fmt.Sprint(ret[j])
		})
		return ret
	}
	return []interface{}{value}
}
