package conv

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// Type names a coercion target
type Type string

const (
	TypeText     Type = "text"
	TypeInt      Type = "int"
	TypeFloat    Type = "float"
	TypeDecimal  Type = "decimal"
	TypeBool     Type = "bool"
	TypeDateTime Type = "datetime"
	TypeDate     Type = "date"
	TypeTime     Type = "time"
)

// ParseType resolves a type name and its common aliases
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "string", "str", "":
		return TypeText, nil
	case "int", "integer", "int64":
		return TypeInt, nil
	case "float", "double", "number", "float64":
		return TypeFloat, nil
	case "decimal", "numeric", "money":
		return TypeDecimal, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "datetime", "timestamp":
		return TypeDateTime, nil
	case "date":
		return TypeDate, nil
	case "time":
		return TypeTime, nil
	}
	return "", fmt.Errorf("%w: unknown type %q", ErrNotConvertible, name)
}

// Cast coerces value into typ. Failed coercions return nil, false; TypeBool
// never fails and TypeText passes value through.
func Cast(value interface{}, typ Type, opts ...Option) (interface{}, bool) {
	return newOptions(opts).cast(value, typ)
}

// CastRecord coerces each field named in types, leaving other fields
// untouched. Fields that fail coercion are set to nil.
func CastRecord(record map[string]interface{}, types map[string]Type, opts ...Option) map[string]interface{} {
	o := newOptions(opts)
	ret := make(map[string]interface{}, len(record))
	for key, value := range record {
		typ, ok := types[key]
		if !ok {
			ret[key] = value
			continue
		}
		ret[key], _ = o.cast(value, typ)
	}
	return ret
}

func (o *Options) cast(value interface{}, typ Type) (interface{}, bool) {
	var ret interface{}
	var ok bool
	switch typ {
	case TypeInt:
		ret, ok = o.toInt(value)
	case TypeFloat:
		ret, ok = o.toFloat(value)
	case TypeDecimal:
		ret, ok = o.toDecimal(value)
	case TypeBool:
		return o.toBool(value), true
	case TypeDateTime:
		ret, ok = o.toDateTime(value)
	case TypeDate:
		ts, parsed := o.toDateTime(value)
		if parsed {
			ret, ok = civil.DateOf(ts), true
		}
	case TypeTime:
		ts, parsed := o.toDateTime(value)
		if parsed {
			ret, ok = civil.TimeOf(ts), true
		}
	default:
		return value, value != nil
	}
	if !ok {
		return nil, false
	}
	return ret, true
}
