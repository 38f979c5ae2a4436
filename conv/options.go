package conv

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/viant/tabconv/format"
	ftime "github.com/viant/tabconv/format/time"
)

const (
	// DefaultThousandSep is the default thousands separator
	DefaultThousandSep = ','
	// DefaultDecimalSep is the default decimal separator
	DefaultDecimalSep = '.'
	// DefaultPlaces is the default number of decimal places kept by ToDecimal
	DefaultPlaces = 2
)

var (
	defaultTrues  = []string{"yes", "y", "true", "t", "1"}
	defaultFalses = []string{"no", "n", "false", "f", "0", ""}
)

// Options contains coercion and conversion settings
type Options struct {
	// ThousandSep is stripped from numeric text
	ThousandSep rune
	// DecimalSep is replaced with '.' in numeric text
	DecimalSep rune
	// Places is the number of decimal places ToDecimal quantizes to
	Places int
	// RoundUp selects round half up, otherwise round half down
	RoundUp bool
	// Trues lists lower case tokens read as true
	Trues []string
	// Falses lists lower case tokens read as false by ParseBool
	Falses []string
	// Default supplies date and time components missing from parsed text
	Default time.Time
	// DayFirst reads an ambiguous 1/2/2000 as the first of February
	DayFirst bool
	// Reference anchors two digit years; zero means the current time
	Reference time.Time
	// TimeLayout is used by Converter to render times as text
	TimeLayout string
	// TagName is the fallback struct tag used by Converter for field names
	TagName string
	// CaseSensitive controls whether Converter matches record keys case sensitively
	CaseSensitive bool
	// Logger receives debug records for values that fall back to the null sentinel
	Logger *slog.Logger

	// layout is tried before fuzzy parsing, set from a field tag
	layout string
}

// Option mutates options
type Option func(o *Options)

// DefaultOptions returns default coercion options
func DefaultOptions() Options {
	return Options{
		ThousandSep: DefaultThousandSep,
		DecimalSep:  DefaultDecimalSep,
		Places:      DefaultPlaces,
		RoundUp:     true,
		Trues:       defaultTrues,
		Falses:      defaultFalses,
		Default:     ftime.DefaultDateTime(),
		TimeLayout:  time.RFC3339,
		TagName:     "json",
	}
}

// WithSeparators sets the thousands and decimal separators
func WithSeparators(thousandSep, decimalSep rune) Option {
	return func(o *Options) {
		o.ThousandSep = thousandSep
		o.DecimalSep = decimalSep
	}
}

// WithPlaces sets the number of decimal places ToDecimal quantizes to
func WithPlaces(places int) Option {
	return func(o *Options) {
		if places < 0 {
			places = 0
		}
		o.Places = places
	}
}

// WithRoundUp selects round half up (true) or round half down (false)
func WithRoundUp(roundUp bool) Option {
	return func(o *Options) { o.RoundUp = roundUp }
}

// WithTrues overrides the tokens read as true
func WithTrues(trues ...string) Option {
	return func(o *Options) { o.Trues = lowerAll(trues) }
}

// WithFalses overrides the tokens read as false by ParseBool
func WithFalses(falses ...string) Option {
	return func(o *Options) { o.Falses = lowerAll(falses) }
}

// WithDefault sets the datetime supplying components missing from parsed text
func WithDefault(ts time.Time) Option {
	return func(o *Options) { o.Default = ts }
}

// WithDayFirst reads ambiguous numeric dates day first
func WithDayFirst(dayFirst bool) Option {
	return func(o *Options) { o.DayFirst = dayFirst }
}

// WithReference sets the time two digit years are resolved against
func WithReference(ts time.Time) Option {
	return func(o *Options) { o.Reference = ts }
}

// WithTimeLayout sets the layout Converter uses to render times as text
func WithTimeLayout(layout string) Option {
	return func(o *Options) { o.TimeLayout = ftime.Layout(layout) }
}

// WithTagName sets the fallback struct tag Converter reads field names from
func WithTagName(name string) Option {
	return func(o *Options) { o.TagName = name }
}

// WithCaseSensitive makes Converter match record keys case sensitively
func WithCaseSensitive(caseSensitive bool) Option {
	return func(o *Options) { o.CaseSensitive = caseSensitive }
}

// WithLogger enables debug logging of null sentinel fallbacks and date repairs
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

func newOptions(opts []Option) *Options {
	ret := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&ret)
		}
	}
	return &ret
}

// withTag returns a copy of o with field level tag overrides applied
func (o *Options) withTag(tag *format.Tag) *Options {
	if tag == nil {
		return o
	}
	ret := *o
	if tag.ThousandSep != 0 {
		ret.ThousandSep = tag.ThousandSep
	}
	if tag.DecimalSep != 0 {
		ret.DecimalSep = tag.DecimalSep
	}
	if tag.Places != nil {
		ret.Places = max(*tag.Places, 0)
	}
	if tag.RoundDown {
		ret.RoundUp = false
	}
	if tag.DayFirst {
		ret.DayFirst = true
	}
	if tag.TimeLayout != "" {
		ret.TimeLayout = tag.TimeLayout
		ret.layout = tag.TimeLayout
	}
	return &ret
}

func (o *Options) debug(msg string, attrs ...slog.Attr) {
	if o.Logger == nil {
		return
	}
	o.Logger.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}

func lowerAll(values []string) []string {
	ret := make([]string, len(values))
	for i, v := range values {
		ret[i] = strings.ToLower(v)
	}
	return ret
}
