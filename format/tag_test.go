package format

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	two := 2
	var testCases = []struct {
		description string
		tag         reflect.StructTag
		tagNames    []string
		expect      *Tag
	}{
		{
			description: "name and separators",
			tag:         reflect.StructTag(`tabconv:"price,thousandSep=.,decimalSep={,},places=2"`),
			expect:      &Tag{Name: "price", ThousandSep: '.', DecimalSep: ',', Places: &two},
		},
		{
			description: "quoted separator",
			tag:         reflect.StructTag(`tabconv:"name=amount,decimalSep=',',roundDown"`),
			expect:      &Tag{Name: "amount", DecimalSep: ',', RoundDown: true},
		},
		{
			description: "date format",
			tag:         reflect.StructTag(`tabconv:"dateFormat=YYYY-MM-DD,name=startDate"`),
			expect:      &Tag{Name: "startDate", DateFormat: "YYYY-MM-DD", TimeLayout: "2006-01-02"},
		},
		{
			description: "strftime format",
			tag:         reflect.StructTag(`tabconv:"since,strftime=%d/%m/%Y,dayFirst"`),
			expect:      &Tag{Name: "since", DateFormat: "%d/%m/%Y", TimeLayout: "02/01/2006", DayFirst: true},
		},
		{
			description: "fallback simple name",
			tagNames:    []string{"json"},
			tag:         reflect.StructTag(`json:"Id,omitempty"`),
			expect:      &Tag{Name: "Id", Omitempty: true},
		},
		{
			description: "tabconv name wins over fallback",
			tagNames:    []string{"json"},
			tag:         reflect.StructTag(`tabconv:"id" json:"ID"`),
			expect:      &Tag{Name: "id"},
		},
		{
			description: "ignored",
			tag:         reflect.StructTag(`tabconv:"-"`),
			expect:      &Tag{Ignore: true},
		},
	}

	for _, testCase := range testCases {
		tag, err := Parse(testCase.tag, testCase.tagNames...)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.Equal(t, testCase.expect, tag, testCase.description)
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse(reflect.StructTag(`tabconv:"price,decimalSep=ab"`))
	assert.NotNil(t, err)
	_, err = Parse(reflect.StructTag(`tabconv:"price,places=x"`))
	assert.NotNil(t, err)
	_, err = Parse(reflect.StructTag(`tabconv:"price,unknown=1"`))
	assert.NotNil(t, err)
}
