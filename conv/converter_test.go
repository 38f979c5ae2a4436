package conv

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type SimpleStruct struct {
	Name        string
	Age         int
	Active      bool
	Score       float64
	DateJoined  time.Time
	Tags        []string
	Collection  []*Basic
	IgnoreField string `json:"-"`
	Renamed     string `json:"custom_name"`
	unexported  string
}

type Basic struct {
	Id int
}

type nestedStruct struct {
	SimpleStruct
	Address string
	Details map[string]interface{}
}

type Invoice struct {
	Number   int             `tabconv:"invoice_no"`
	Amount   decimal.Decimal `tabconv:"amount,thousandSep=.,decimalSep={,}"`
	Rate     decimal.Decimal `tabconv:"rate,places=3,roundDown"`
	Issued   civil.Date      `tabconv:"issued,dateFormat=DD/MM/YYYY"`
	Due      *time.Time      `tabconv:"due"`
	Cutoff   civil.Time      `tabconv:"cutoff"`
	Paid     bool            `tabconv:"paid"`
	Internal string          `tabconv:"-"`
}

func TestConvertToString(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		src         interface{}
		expected    string
	}{
		{description: "string", src: "hello", expected: "hello"},
		{description: "int", src: 123, expected: "123"},
		{description: "bool true", src: true, expected: "true"},
		{description: "bool false", src: false, expected: "false"},
		{description: "float", src: 123.456, expected: "123.456"},
		{description: "bytes", src: []byte("hello"), expected: "hello"},
		{description: "quantized decimal", src: decimal.RequireFromString("123.00"), expected: "123.00"},
		{description: "time", src: time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC), expected: "2023-01-15T12:30:45Z"},
	}

	for _, testCase := range testCases {
		var result string
		err := converter.Convert(testCase.src, &result)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expected, result, testCase.description)
	}
}

func TestConvertToBool(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		src         interface{}
		expected    bool
		expectErr   bool
	}{
		{description: "bool true", src: true, expected: true},
		{description: "bool false", src: false, expected: false},
		{description: "int 1", src: 1, expected: true},
		{description: "int 0", src: 0, expected: false},
		{description: "string true", src: "true", expected: true},
		{description: "string false", src: "false", expected: false},
		{description: "string yes", src: "Yes", expected: true},
		{description: "string N", src: "N", expected: false},
		{description: "string 1", src: "1", expected: true},
		{description: "string 0", src: "0", expected: false},
		{description: "unknown token", src: "maybe", expectErr: true},
	}

	for _, testCase := range testCases {
		var result bool
		err := converter.Convert(testCase.src, &result)
		if testCase.expectErr {
			assert.True(t, errors.Is(err, ErrNotConvertible), testCase.description)
			continue
		}
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expected, result, testCase.description)
	}
}

func TestConvertToInt(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		src         interface{}
		expected    int
	}{
		{description: "int", src: 123, expected: 123},
		{description: "int8", src: int8(8), expected: 8},
		{description: "int16", src: int16(16), expected: 16},
		{description: "int32", src: int32(32), expected: 32},
		{description: "int64", src: int64(64), expected: 64},
		{description: "uint", src: uint(123), expected: 123},
		{description: "float32", src: float32(123.5), expected: 123},
		{description: "float64", src: 123.5, expected: 123},
		{description: "string", src: "123", expected: 123},
		{description: "string float", src: "123.5", expected: 123},
		{description: "thousands", src: "2,123.45", expected: 2123},
		{description: "currency", src: "$ 1,000", expected: 1000},
		{description: "bool true", src: true, expected: 1},
		{description: "bool false", src: false, expected: 0},
	}

	for _, testCase := range testCases {
		var result int
		err := converter.Convert(testCase.src, &result)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expected, result, testCase.description)
	}
}

func TestConvertToInt_Errors(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var small int8
	err := converter.Convert(300, &small)
	assert.True(t, errors.Is(err, ErrNotConvertible), "overflow")

	var unsigned uint
	err = converter.Convert(-1, &unsigned)
	assert.True(t, errors.Is(err, ErrNotConvertible), "negative unsigned")

	var n int
	err = converter.Convert("spam", &n)
	assert.True(t, errors.Is(err, ErrNotConvertible), "spam")
}

func TestConvertToFloat(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		src         interface{}
		expected    float64
	}{
		{description: "int", src: 123, expected: 123.0},
		{description: "float32", src: float32(123.5), expected: 123.5},
		{description: "float64", src: 123.5, expected: 123.5},
		{description: "string", src: "123.5", expected: 123.5},
		{description: "thousands", src: "2,123.45", expected: 2123.45},
		{description: "bool true", src: true, expected: 1.0},
		{description: "bool false", src: false, expected: 0.0},
	}

	for _, testCase := range testCases {
		var result float64
		err := converter.Convert(testCase.src, &result)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expected, result, testCase.description)
	}
}

func TestConvertToTime(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	refTime := time.Date(2023, 1, 15, 12, 30, 45, 0, time.UTC)

	var testCases = []struct {
		description string
		src         interface{}
		expected    time.Time
	}{
		{description: "RFC3339", src: "2023-01-15T12:30:45Z", expected: refTime},
		{description: "fractional seconds", src: "2023-01-15 12:30:45.000", expected: refTime},
		{description: "month name", src: "Jan 15, 2023 12:30:45", expected: refTime},
		{description: "time.Time", src: refTime, expected: refTime},
		{description: "impossible day", src: "2/30/2023 12:15:45", expected: time.Date(2023, 2, 28, 12, 15, 45, 0, time.UTC)},
	}

	for _, testCase := range testCases {
		var result time.Time
		err := converter.Convert(testCase.src, &result)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.True(t, result.Equal(testCase.expected), "%v: expected %v, got %v", testCase.description, testCase.expected, result)
	}
}

func TestConvertToSlice(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var testCases = []struct {
		description string
		src         interface{}
		dest        interface{}
		expected    interface{}
	}{
		{
			description: "[]int from []int",
			src:         []int{1, 2, 3},
			dest:        &[]int{},
			expected:    []int{1, 2, 3},
		},
		{
			description: "[]int from []float64",
			src:         []float64{1.1, 2.2, 3.3},
			dest:        &[]int{},
			expected:    []int{1, 2, 3},
		},
		{
			description: "[]string from []int",
			src:         []int{1, 2, 3},
			dest:        &[]string{},
			expected:    []string{"1", "2", "3"},
		},
		{
			description: "[]string from string",
			src:         "hello",
			dest:        &[]string{},
			expected:    []string{"hello"},
		},
		{
			description: "[]string from []interface{}",
			src:         []interface{}{"hello", 123, true, 45.67},
			dest:        &[]string{},
			expected:    []string{"hello", "123", "true", "45.67"},
		},
		{
			description: "[]decimal from []string",
			src:         []string{"1.554", "1.556"},
			dest:        &[]decimal.Decimal{},
			expected:    []decimal.Decimal{decimal.RequireFromString("1.55"), decimal.RequireFromString("1.56")},
		},
	}

	for _, testCase := range testCases {
		err := converter.Convert(testCase.src, testCase.dest)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		destValue := reflect.ValueOf(testCase.dest).Elem().Interface()
		if expected, ok := testCase.expected.([]decimal.Decimal); ok {
			actual := destValue.([]decimal.Decimal)
			if assert.Len(t, actual, len(expected), testCase.description) {
				for i := range expected {
					assert.True(t, expected[i].Equal(actual[i]), testCase.description)
				}
			}
			continue
		}
		assert.EqualValues(t, testCase.expected, destValue, testCase.description)
	}
}

func TestConvertToMap(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	srcMap := map[string]int{
		"one": 1,
		"two": 2,
	}
	var destMap map[string]string
	err := converter.Convert(srcMap, &destMap)
	assert.Nil(t, err)
	assert.EqualValues(t, map[string]string{"one": "1", "two": "2"}, destMap)

	var amounts map[string]float64
	err = converter.Convert(map[string]interface{}{"net": "1,000.50", "tax": nil}, &amounts)
	assert.Nil(t, err)
	assert.EqualValues(t, map[string]float64{"net": 1000.5, "tax": 0}, amounts)
}

func TestConvertMapToStruct(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	srcMap := map[string]interface{}{
		"name":        "Jane Smith",
		"age":         "25",
		"active":      "yes",
		"score":       "92.5",
		"datejoined":  "5/4/2020",
		"custom_name": "Renamed Value",
		"ignorefield": "skip",
		"tags":        []string{"tag1", "tag2"},
		"collection": []interface{}{
			map[string]interface{}{
				"id": 1,
			},
			map[string]interface{}{
				"id": "2",
			},
		},
	}

	var result SimpleStruct
	err := converter.Convert(srcMap, &result)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "Jane Smith", result.Name)
	assert.Equal(t, 25, result.Age)
	assert.True(t, result.Active)
	assert.Equal(t, 92.5, result.Score)
	assert.Equal(t, time.Date(2020, 5, 4, 0, 0, 0, 0, time.UTC), result.DateJoined)
	assert.EqualValues(t, []string{"tag1", "tag2"}, result.Tags)
	assert.EqualValues(t, []*Basic{{Id: 1}, {Id: 2}}, result.Collection)
	assert.Equal(t, "Renamed Value", result.Renamed)
	assert.Equal(t, "", result.IgnoreField)

	caseSensitiveOpts := DefaultOptions()
	caseSensitiveOpts.CaseSensitive = true
	caseConverter := NewConverter(caseSensitiveOpts)

	mixedCaseMap := map[string]interface{}{
		"Name": "John Doe",
		"age":  30,
	}
	var caseResult SimpleStruct
	err = caseConverter.Convert(mixedCaseMap, &caseResult)
	assert.Nil(t, err)
	assert.Equal(t, "John Doe", caseResult.Name)
	assert.Equal(t, 0, caseResult.Age)
}

func TestConvertMapToStruct_Tags(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	record := map[string]interface{}{
		"invoice_no": "1.024",
		"amount":     "2.123,45 €",
		"rate":       "0.1235",
		"issued":     "04/05/2020",
		"due":        "2/32/82",
		"cutoff":     "2:00 pm",
		"paid":       "t",
		"internal":   "secret",
	}
	var invoice Invoice
	err := converter.Convert(record, &invoice)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, 1, invoice.Number)
	assert.Equal(t, "2123.45", DecimalString(invoice.Amount))
	assert.Equal(t, "0.123", DecimalString(invoice.Rate))
	assert.Equal(t, civil.Date{Year: 2020, Month: time.May, Day: 4}, invoice.Issued)
	if assert.NotNil(t, invoice.Due) {
		assert.Equal(t, "1982-02-28", invoice.Due.Format("2006-01-02"))
	}
	assert.Equal(t, civil.Time{Hour: 14}, invoice.Cutoff)
	assert.True(t, invoice.Paid)
	assert.Equal(t, "", invoice.Internal)
}

func TestConvertMapToStruct_Errors(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	var invoice Invoice
	err := converter.Convert(map[string]interface{}{
		"invoice_no": "spam",
		"due":        "Novmbr 4",
		"paid":       "t",
	}, &invoice)
	assert.True(t, errors.Is(err, ErrNotConvertible))
	assert.Contains(t, err.Error(), "field Number")
	assert.Contains(t, err.Error(), "field Due")
	assert.True(t, invoice.Paid)
	assert.Nil(t, invoice.Due)
}

func TestConvertNestedStructs(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	srcMap := map[string]interface{}{
		"name":    "John Doe",
		"age":     30,
		"active":  true,
		"address": "123 Main St",
		"details": map[string]interface{}{
			"country": "USA",
			"zip":     "12345",
		},
	}

	var result nestedStruct
	err := converter.Convert(srcMap, &result)
	if !assert.Nil(t, err) {
		return
	}
	assert.Equal(t, "John Doe", result.Name)
	assert.Equal(t, 30, result.Age)
	assert.True(t, result.Active)
	assert.Equal(t, "123 Main St", result.Address)
	assert.Equal(t, "USA", result.Details["country"])
	assert.Equal(t, "12345", result.Details["zip"])
}

func TestConvert_InvalidDestination(t *testing.T) {
	converter := NewConverter(DefaultOptions())
	var n int
	assert.NotNil(t, converter.Convert(1, nil))
	assert.NotNil(t, converter.Convert(1, n))
	assert.NotNil(t, converter.Convert(1, (*int)(nil)))

	n = 5
	assert.Nil(t, converter.Convert(nil, &n))
	assert.Equal(t, 0, n)
}

func TestCustomConversion(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	converter.RegisterConversion(
		reflect.TypeOf(""),
		reflect.TypeOf([]int{}),
		ConversionFunc(func(src interface{}, dest interface{}, opts Options) error {
			str := src.(string)
			result := make([]int, len(str))
			for i, r := range str {
				result[i] = int(r)
			}
			destVal := reflect.ValueOf(dest).Elem()
			destVal.Set(reflect.ValueOf(result))
			return nil
		}),
	)

	var result []int
	err := converter.Convert("abc", &result)
	assert.Nil(t, err)
	assert.EqualValues(t, []int{97, 98, 99}, result)
}

func TestRecordsConversion(t *testing.T) {
	converter := NewConverter(DefaultOptions())

	type Line struct {
		Sku      string
		Quantity int
		Price    decimal.Decimal
	}

	type Order struct {
		Lines []*Line
	}

	srcData := map[string]interface{}{
		"Lines": []map[string]interface{}{
			{"sku": "A-1", "quantity": "3", "price": "$12.50"},
			{"sku": "B-2", "quantity": 1.0, "price": 7},
		},
	}

	var order Order
	err := converter.Convert(srcData, &order)
	if !assert.Nil(t, err) {
		return
	}
	if !assert.Len(t, order.Lines, 2) {
		return
	}
	assert.Equal(t, "A-1", order.Lines[0].Sku)
	assert.Equal(t, 3, order.Lines[0].Quantity)
	assert.Equal(t, "12.50", DecimalString(order.Lines[0].Price))
	assert.Equal(t, 1, order.Lines[1].Quantity)
	assert.Equal(t, "7.00", DecimalString(order.Lines[1].Price))
}
