package tabconv

import (
	"reflect"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	dateType     = reflect.TypeOf(civil.Date{})
	clockType    = reflect.TypeOf(civil.Time{})
	dateTimeType = reflect.TypeOf(civil.DateTime{})
)

// isTimeType reports struct types that flatten into a single value
func isTimeType(candidate reflect.Type) bool {
	switch candidate {
	case timeType, decimalType, dateType, clockType, dateTimeType:
		return true
	}
	return false
}

func ensureStructType(t reflect.Type) reflect.Type {
	switch t.Kind() {
	case reflect.Struct:
		if isTimeType(t) {
			return nil
		}
		return t
	case reflect.Ptr:
		return ensureStructType(t.Elem())
	}
	return nil
}
