package tabconv

import (
	"bytes"
	"math"
	"reflect"
	"sort"

	"github.com/francoispqt/gojay"
)

// RecordsToJSON encodes records as a JSON array of objects. Keys follow
// WithHeader when given, otherwise they are sorted unless WithSortKeys(false)
// is set. Decimal and date-like values are encoded as strings, collections as
// arrays.
func RecordsToJSON(records Records, opts ...Option) (*bytes.Reader, error) {
	options := NewOptions(opts...)
	data, err := gojay.MarshalJSONArray(&recordsEncoder{records: records, options: options})
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

type recordsEncoder struct {
	records Records
	options *Options
}

func (e *recordsEncoder) MarshalJSONArray(enc *gojay.Encoder) {
	for _, record := range e.records {
		enc.Object(&recordEncoder{record: record, header: e.options.Header, options: e.options})
	}
}

func (e *recordsEncoder) IsNil() bool { return false }

type recordEncoder struct {
	record  Record
	header  []string
	options *Options
}

func (e *recordEncoder) MarshalJSONObject(enc *gojay.Encoder) {
	for _, name := range e.keys() {
		key := e.options.key(name)
		value := e.record[name]
		switch KindOf(value) {
		case KindDecimal, KindDateLike:
			enc.StringKey(key, e.options.Text(value))
		case KindCollection:
			enc.ArrayKey(key, &itemsEncoder{items: Items(value), options: e.options})
		default:
			e.options.encodeKey(enc, key, value)
		}
	}
}

func (e *recordEncoder) IsNil() bool { return e.record == nil }

func (e *recordEncoder) keys() []string {
	if len(e.header) > 0 {
		return e.header
	}
	keys := make([]string, 0, len(e.record))
	for key := range e.record {
		keys = append(keys, key)
	}
	if e.options.SortKeys {
		sort.Strings(keys)
	}
	return keys
}

type itemsEncoder struct {
	items   []interface{}
	options *Options
}

func (e *itemsEncoder) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range e.items {
		switch KindOf(item) {
		case KindDecimal, KindDateLike:
			enc.String(e.options.Text(item))
		case KindCollection:
			enc.Array(&itemsEncoder{items: Items(item), options: e.options})
		default:
			e.options.encode(enc, item)
		}
	}
}

func (e *itemsEncoder) IsNil() bool { return e.items == nil }

func (o *Options) encodeKey(enc *gojay.Encoder, key string, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.NullKey(key)
	case string:
		enc.StringKey(key, actual)
	case []byte:
		enc.StringKey(key, string(actual))
	case bool:
		enc.BoolKey(key, actual)
	case Record:
		enc.ObjectKey(key, &recordEncoder{record: actual, options: o})
	case map[string]interface{}:
		enc.ObjectKey(key, &recordEncoder{record: actual, options: o})
	default:
		rValue := reflect.ValueOf(value)
		switch rValue.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			enc.Int64Key(key, rValue.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			enc.Uint64Key(key, rValue.Uint())
		case reflect.Float32, reflect.Float64:
			if f := rValue.Float(); isFinite(f) {
				enc.Float64Key(key, f)
			} else {
				enc.NullKey(key)
			}
		default:
			enc.StringKey(key, o.Text(value))
		}
	}
}

func (o *Options) encode(enc *gojay.Encoder, value interface{}) {
	switch actual := value.(type) {
	case nil:
		enc.Null()
	case string:
		enc.String(actual)
	case []byte:
		enc.String(string(actual))
	case bool:
		enc.Bool(actual)
	case Record:
		enc.Object(&recordEncoder{record: actual, options: o})
	case map[string]interface{}:
		enc.Object(&recordEncoder{record: actual, options: o})
	default:
		rValue := reflect.ValueOf(value)
		switch rValue.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			enc.Int64(rValue.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			enc.Uint64(rValue.Uint())
		case reflect.Float32, reflect.Float64:
			if f := rValue.Float(); isFinite(f) {
				enc.Float64(f)
			} else {
				enc.Null()
			}
		default:
			enc.String(o.Text(value))
		}
	}
}

// isFinite excludes NaN and infinities, which JSON cannot represent
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
