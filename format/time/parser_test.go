package time

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParser_Parse(t *testing.T) {
	reference := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	var testCases = []struct {
		description string
		input       string
		dayFirst    bool
		expect      time.Time
	}{
		{
			description: "us short date",
			input:       "5/4/82",
			expect:      time.Date(1982, 5, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "date with meridiem time",
			input:       "5/4/82 2:00 pm",
			expect:      time.Date(1982, 5, 4, 14, 0, 0, 0, time.UTC),
		},
		{
			description: "date with 24h time",
			input:       "5/4/82 10:00",
			expect:      time.Date(1982, 5, 4, 10, 0, 0, 0, time.UTC),
		},
		{
			description: "time only keeps default date",
			input:       "2:00 pm",
			expect:      time.Date(9999, 12, 31, 14, 0, 0, 0, time.UTC),
		},
		{
			description: "bare hour with meridiem",
			input:       "12 am",
			expect:      time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "iso date time",
			input:       "2023-01-02T01:22:19",
			expect:      time.Date(2023, 1, 2, 1, 22, 19, 0, time.UTC),
		},
		{
			description: "iso with fraction and zulu",
			input:       "2023-01-02 01:22:19.5Z",
			expect:      time.Date(2023, 1, 2, 1, 22, 19, 500000000, time.UTC),
		},
		{
			description: "iso with offset",
			input:       "2023-01-02T01:22:19-07:00",
			expect:      time.Date(2023, 1, 2, 1, 22, 19, 0, time.FixedZone("", -7*3600)),
		},
		{
			description: "month name",
			input:       "Tuesday, November 4th 2014",
			expect:      time.Date(2014, 11, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "month name without year",
			input:       "Nov 4",
			expect:      time.Date(9999, 11, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "month without day clamps default day",
			input:       "February 2015",
			expect:      time.Date(2015, 2, 28, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "compact date",
			input:       "19820504",
			expect:      time.Date(1982, 5, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "day first",
			input:       "5/4/82",
			dayFirst:    true,
			expect:      time.Date(1982, 4, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "day above twelve swaps order",
			input:       "25/4/1982",
			expect:      time.Date(1982, 4, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "day above twelve without year",
			input:       "25/12",
			expect:      time.Date(9999, 12, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "last day without year",
			input:       "31/12",
			expect:      time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "month and day without year",
			input:       "12/25",
			expect:      time.Date(9999, 12, 25, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "short compact date",
			input:       "820504",
			expect:      time.Date(1982, 5, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "short compact date with small year",
			input:       "010203",
			expect:      time.Date(2001, 2, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			description: "zone abbreviation",
			input:       "2023-01-02 10:00 EST",
			expect:      time.Date(2023, 1, 2, 15, 0, 0, 0, time.UTC),
		},
	}

	for _, testCase := range testCases {
		parser := &Parser{Default: DefaultDateTime(), DayFirst: testCase.dayFirst, Reference: reference}
		actual, err := parser.Parse(testCase.input)
		if !assert.Nil(t, err, testCase.description) {
			continue
		}
		assert.True(t, testCase.expect.Equal(actual), "%v: expected %v, got %v", testCase.description, testCase.expect, actual)
	}
}

func TestParser_ParseErrors(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      error
	}{
		{description: "day out of range", input: "2/32/82", expect: ErrImpossibleDate},
		{description: "non leap february", input: "2/29/82", expect: ErrImpossibleDate},
		{description: "month out of range", input: "13/13/2020", expect: ErrImpossibleDate},
		{description: "hour out of range", input: "25:10", expect: ErrImpossibleDate},
		{description: "garbled month", input: "Novmbr 4", expect: ErrUnparseable},
		{description: "empty", input: "", expect: ErrUnparseable},
		{description: "text", input: "spam", expect: ErrUnparseable},
		{description: "unexpected symbol", input: "5/4/82 $", expect: ErrUnparseable},
		{description: "long number", input: "12345", expect: ErrUnparseable},
		{description: "seven digits", input: "1982050", expect: ErrUnparseable},
	}

	parser := NewParser()
	for _, testCase := range testCases {
		_, err := parser.Parse(testCase.input)
		assert.True(t, errors.Is(err, testCase.expect), "%v: %v", testCase.description, err)
	}
}

func TestParser_FullYear(t *testing.T) {
	parser := &Parser{Reference: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, 1982, parser.fullYear(82))
	assert.Equal(t, 2015, parser.fullYear(15))
	assert.Equal(t, 2075, parser.fullYear(75))
	assert.Equal(t, 1976, parser.fullYear(76))
}
