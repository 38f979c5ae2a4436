package conv

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/viant/tabconv/format"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	decimalType  = reflect.TypeOf(decimal.Decimal{})
	dateType     = reflect.TypeOf(civil.Date{})
	clockType    = reflect.TypeOf(civil.Time{})
	dateTimeType = reflect.TypeOf(civil.DateTime{})
)

// Converter binds loosely typed values, typically records, onto typed
// destinations using the coercion rules of this package
type Converter struct {
	options       Options
	structCache   sync.Map // map[reflect.Type]*structInfo
	customConvMap sync.Map // map[typeKey]ConversionFunc
}

// ConversionFunc defines a custom conversion function
type ConversionFunc func(src interface{}, dest interface{}, opts Options) error

type typeKey struct {
	srcType  reflect.Type
	destType reflect.Type
}

// NewConverter creates a converter with the provided options
func NewConverter(options Options) *Converter {
	return &Converter{
		options: options,
	}
}

// RegisterConversion registers a custom conversion function between source and destination types
func (c *Converter) RegisterConversion(srcType, destType reflect.Type, fn ConversionFunc) {
	c.customConvMap.Store(typeKey{srcType, destType}, fn)
}

// Convert converts src into the value dest points to. Nil src zeroes the
// destination. A value that cannot be coerced yields an error wrapping
// ErrNotConvertible.
func (c *Converter) Convert(src interface{}, dest interface{}) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	if destValue.IsNil() {
		return errors.New("destination pointer cannot be nil")
	}
	return c.assign(destValue.Elem(), src, &c.options)
}

func (c *Converter) assign(dest reflect.Value, src interface{}, o *Options) error {
	srcValue := indirect(reflect.ValueOf(src))
	if !srcValue.IsValid() || (srcValue.Kind() == reflect.Ptr && srcValue.IsNil()) {
		dest.Set(reflect.Zero(dest.Type()))
		return nil
	}
	src = srcValue.Interface()
	srcType := srcValue.Type()
	destType := dest.Type()

	if v, ok := c.customConvMap.Load(typeKey{srcType, destType}); ok {
		holder := reflect.New(destType)
		if err := v.(ConversionFunc)(src, holder.Interface(), *o); err != nil {
			return err
		}
		dest.Set(holder.Elem())
		return nil
	}

	if destType.Kind() == reflect.Ptr {
		holder := reflect.New(destType.Elem())
		if err := c.assign(holder.Elem(), src, o); err != nil {
			return err
		}
		dest.Set(holder)
		return nil
	}

	switch destType {
	case decimalType:
		d, ok := o.toDecimal(src)
		return setIf(dest, reflect.ValueOf(d), ok, src)
	case timeType:
		ts, ok := o.toDateTime(src)
		return setIf(dest, reflect.ValueOf(ts), ok, src)
	case dateType:
		ts, ok := o.toDateTime(src)
		return setIf(dest, reflect.ValueOf(civil.DateOf(ts)), ok, src)
	case clockType:
		ts, ok := o.toDateTime(src)
		return setIf(dest, reflect.ValueOf(civil.TimeOf(ts)), ok, src)
	case dateTimeType:
		ts, ok := o.toDateTime(src)
		return setIf(dest, reflect.ValueOf(civil.DateTimeOf(ts)), ok, src)
	}

	if srcType.AssignableTo(destType) {
		dest.Set(srcValue)
		return nil
	}

	switch destType.Kind() {
	case reflect.String:
		text, err := o.stringify(src)
		if err != nil {
			return err
		}
		dest.SetString(text)
		return nil
	case reflect.Bool:
		b, ok := o.parseBool(src)
		if !ok {
			return notConvertible(src, destType)
		}
		dest.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := o.toInt(src)
		if !ok || dest.OverflowInt(n) {
			return notConvertible(src, destType)
		}
		dest.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := o.toInt(src)
		if !ok || n < 0 || dest.OverflowUint(uint64(n)) {
			return notConvertible(src, destType)
		}
		dest.SetUint(uint64(n))
		return nil
	case reflect.Float32, reflect.Float64:
		f, ok := o.toFloat(src)
		if !ok || dest.OverflowFloat(f) {
			return notConvertible(src, destType)
		}
		dest.SetFloat(f)
		return nil
	case reflect.Struct:
		return c.convertToStruct(dest, srcValue, o)
	case reflect.Slice:
		return c.convertToSlice(dest, srcValue, o)
	case reflect.Map:
		return c.convertToMap(dest, srcValue, o)
	}

	if srcType.ConvertibleTo(destType) {
		dest.Set(srcValue.Convert(destType))
		return nil
	}
	return notConvertible(src, destType)
}

func setIf(dest, value reflect.Value, ok bool, src interface{}) error {
	if !ok {
		return notConvertible(src, dest.Type())
	}
	dest.Set(value)
	return nil
}

func notConvertible(src interface{}, destType reflect.Type) error {
	return fmt.Errorf("%w: %v (%T) to %v", ErrNotConvertible, src, src, destType)
}

func (o *Options) stringify(src interface{}) (string, error) {
	switch actual := src.(type) {
	case string:
		return actual, nil
	case []byte:
		return string(actual), nil
	case bool:
		return strconv.FormatBool(actual), nil
	case decimal.Decimal:
		return DecimalString(actual), nil
	case time.Time:
		return actual.Format(o.TimeLayout), nil
	case fmt.Stringer:
		return actual.String(), nil
	}
	srcValue := reflect.ValueOf(src)
	switch srcValue.Kind() {
	case reflect.String:
		return srcValue.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(srcValue.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(srcValue.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(srcValue.Float(), 'f', -1, 64), nil
	}
	return "", notConvertible(src, reflect.TypeOf(""))
}

// DecimalString renders d with all of its fractional digits, keeping the
// trailing zeros a quantized value carries, e.g. 123.00
func DecimalString(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

func (c *Converter) convertToSlice(destValue, srcValue reflect.Value, o *Options) error {
	destType := destValue.Type()
	destElemType := destType.Elem()

	// Special case: string to []byte
	if destElemType.Kind() == reflect.Uint8 && srcValue.Kind() == reflect.String {
		destValue.SetBytes([]byte(srcValue.String()))
		return nil
	}

	if srcValue.Kind() != reflect.Slice && srcValue.Kind() != reflect.Array {
		// Convert single value to slice with one element
		sliceValue := reflect.MakeSlice(destType, 1, 1)
		if err := c.assign(sliceValue.Index(0), srcValue.Interface(), o); err != nil {
			return err
		}
		destValue.Set(sliceValue)
		return nil
	}

	length := srcValue.Len()
	sliceValue := reflect.MakeSlice(destType, length, length)
	for i := 0; i < length; i++ {
		if err := c.assign(sliceValue.Index(i), srcValue.Index(i).Interface(), o); err != nil {
			return fmt.Errorf("error converting slice element %d: %w", i, err)
		}
	}
	destValue.Set(sliceValue)
	return nil
}

func (c *Converter) convertToStruct(destValue, srcValue reflect.Value, o *Options) error {
	if srcValue.Kind() != reflect.Map || srcValue.Type().Key().Kind() != reflect.String {
		return notConvertible(srcValue.Interface(), destValue.Type())
	}
	destInfo := c.getStructInfo(destValue.Type())

	srcMap := make(map[string]interface{}, srcValue.Len())
	iter := srcValue.MapRange()
	for iter.Next() {
		key := iter.Key().String()
		if !c.options.CaseSensitive {
			key = strings.ToLower(key)
		}
		srcMap[key] = iter.Value().Interface()
	}

	var errs []error
	for _, field := range destInfo.fields {
		value, ok := srcMap[field.key]
		if !ok {
			continue
		}
		fieldValue := destValue.FieldByIndex(field.index)
		if err := c.assign(fieldValue, value, o.withTag(field.tag)); err != nil {
			errs = append(errs, fmt.Errorf("field %s: %w", field.name, err))
		}
	}
	return errors.Join(errs...)
}

func (c *Converter) convertToMap(destValue, srcValue reflect.Value, o *Options) error {
	if srcValue.Kind() != reflect.Map {
		return notConvertible(srcValue.Interface(), destValue.Type())
	}
	destType := destValue.Type()
	mapValue := reflect.MakeMapWithSize(destType, srcValue.Len())
	iter := srcValue.MapRange()
	for iter.Next() {
		key := reflect.New(destType.Key()).Elem()
		if err := c.assign(key, iter.Key().Interface(), o); err != nil {
			return err
		}
		value := reflect.New(destType.Elem()).Elem()
		if err := c.assign(value, iter.Value().Interface(), o); err != nil {
			return fmt.Errorf("error converting map key %v: %w", iter.Key().Interface(), err)
		}
		mapValue.SetMapIndex(key, value)
	}
	destValue.Set(mapValue)
	return nil
}

// struct reflection caching

type structField struct {
	name  string
	key   string
	index []int
	tag   *format.Tag
}

type structInfo struct {
	fields []structField
}

func (c *Converter) getStructInfo(t reflect.Type) *structInfo {
	if v, ok := c.structCache.Load(t); ok {
		return v.(*structInfo)
	}
	info := &structInfo{}
	c.buildStructInfo(t, info, nil)
	c.structCache.Store(t, info)
	return info
}

func (c *Converter) buildStructInfo(t reflect.Type, info *structInfo, index []int) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		fieldIndex := make([]int, len(index)+1)
		copy(fieldIndex, index)
		fieldIndex[len(index)] = i

		if field.Anonymous {
			ft := field.Type
			if ft.Kind() == reflect.Struct && !isScalarStruct(ft) {
				c.buildStructInfo(ft, info, fieldIndex)
				continue
			}
		}
		if !field.IsExported() {
			continue
		}

		tag, err := format.Parse(field.Tag, c.options.TagName)
		if err != nil || tag.Ignore {
			continue
		}
		key := field.Name
		if tag.Name != "" {
			key = tag.Name
		}
		if !c.options.CaseSensitive {
			key = strings.ToLower(key)
		}
		info.fields = append(info.fields, structField{
			name:  field.Name,
			key:   key,
			index: fieldIndex,
			tag:   tag,
		})
	}
}

func isScalarStruct(t reflect.Type) bool {
	switch t {
	case timeType, decimalType, dateType, clockType, dateTimeType:
		return true
	}
	return false
}

// helper functions

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	return v
}
