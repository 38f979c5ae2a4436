package tabconv

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/viant/tabconv/format"
	"github.com/viant/xunsafe"
)

var recordTypes sync.Map // map[recordTypeKey]*recordType

type recordTypeKey struct {
	rType   reflect.Type
	tagName string
}

type recordField struct {
	name  string
	field *xunsafe.Field
	tag   *format.Tag
}

type recordType struct {
	fields []*recordField
}

// Header returns the record keys in field order
func (t *recordType) Header() []string {
	ret := make([]string, len(t.fields))
	for i, field := range t.fields {
		ret[i] = field.name
	}
	return ret
}

// RecordsOf flattens a struct, a slice of structs or struct pointers, or a
// slice of maps into records, keyed by the tabconv tag name, the fallback tag
// name or the field name. The second result lists keys in field order.
func RecordsOf(value interface{}, opts ...Option) (Records, []string, error) {
	options := NewOptions(opts...)
	switch actual := value.(type) {
	case nil:
		return nil, nil, nil
	case Records:
		return actual, actual.Keys(), nil
	case []map[string]interface{}:
		ret := make(Records, len(actual))
		for i, item := range actual {
			ret[i] = item
		}
		return ret, ret.Keys(), nil
	}

	rValue := reflect.ValueOf(value)
	switch rValue.Kind() {
	case reflect.Slice, reflect.Array:
		elemType := ensureStructType(rValue.Type().Elem())
		if elemType == nil {
			return nil, nil, fmt.Errorf("expected slice of structs, got %T", value)
		}
		rType := recordTypeOf(elemType, options.TagName)
		ret := make(Records, 0, rValue.Len())
		for i := 0; i < rValue.Len(); i++ {
			item := rValue.Index(i)
			if item.Kind() == reflect.Ptr {
				if item.IsNil() {
					continue
				}
				item = item.Elem()
			}
			ret = append(ret, rType.record(item))
		}
		return ret, rType.Header(), nil
	case reflect.Ptr, reflect.Struct:
		structType := ensureStructType(rValue.Type())
		if structType == nil {
			return nil, nil, fmt.Errorf("expected struct or pointer to struct, got %T", value)
		}
		if rValue.Kind() == reflect.Ptr {
			if rValue.IsNil() {
				return nil, nil, nil
			}
			rValue = rValue.Elem()
		}
		rType := recordTypeOf(structType, options.TagName)
		return Records{rType.record(rValue)}, rType.Header(), nil
	}
	return nil, nil, fmt.Errorf("expected struct, slice of structs or records, got %T", value)
}

func (t *recordType) record(value reflect.Value) Record {
	if !value.CanAddr() {
		holder := reflect.New(value.Type())
		holder.Elem().Set(value)
		value = holder.Elem()
	}
	ptr := xunsafe.AsPointer(value.Addr().Interface())
	ret := make(Record, len(t.fields))
	for _, field := range t.fields {
		fieldValue := field.field.Value(ptr)
		if ts, ok := fieldValue.(time.Time); ok && field.tag.TimeLayout != "" {
			ret[field.name] = field.tag.FormatTime(ts)
			continue
		}
		ret[field.name] = deref(fieldValue)
	}
	return ret
}

func deref(value interface{}) interface{} {
	rValue := reflect.ValueOf(value)
	if rValue.Kind() != reflect.Ptr {
		return value
	}
	if rValue.IsNil() {
		return nil
	}
	return rValue.Elem().Interface()
}

func recordTypeOf(structType reflect.Type, tagName string) *recordType {
	key := recordTypeKey{rType: structType, tagName: tagName}
	if cached, ok := recordTypes.Load(key); ok {
		return cached.(*recordType)
	}
	ret := &recordType{}
	ret.build(structType, tagName, 0)
	recordTypes.Store(key, ret)
	return ret
}

func (t *recordType) build(structType reflect.Type, tagName string, offset uintptr) {
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Tag == "" && !isTimeType(field.Type) {
			t.build(field.Type, tagName, offset+field.Offset)
			continue
		}
		if !field.IsExported() {
			continue
		}
		tag, err := format.Parse(field.Tag, tagName)
		if err != nil || tag.Ignore {
			continue
		}
		name := field.Name
		if tag.Name != "" {
			name = tag.Name
		}
		field.Offset += offset
		t.fields = append(t.fields, &recordField{name: name, field: xunsafe.NewField(field), tag: tag})
	}
}
