package tabconv

import (
	ftime "github.com/viant/tabconv/format/time"
	"github.com/viant/tagly/format/text"
)

// DefaultTimeLayout renders date-like values the way a plain datetime prints
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Option configures record serialization
type Option interface{ apply(*Options) }

// Options represents record serialization options
type Options struct {
	// Header orders CSV columns and JSON keys
	Header []string
	// Encoding is the IANA charset of CSV output, utf-8 when empty
	Encoding string
	// BOM prefixes CSV output with a UTF-8 byte order mark
	BOM bool
	// Delimiter separates CSV fields
	Delimiter byte
	// CRLF terminates CSV records with \r\n
	CRLF bool
	// SortKeys orders JSON keys alphabetically when no header is given
	SortKeys bool
	// CaseFormat renames CSV header and JSON keys
	CaseFormat text.CaseFormat
	// TimeLayout renders time.Time values
	TimeLayout string
	// TagName is the struct tag RecordsOf falls back to for field names
	TagName string
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithHeader sets the field order
func WithHeader(header ...string) Option {
	return optionFn(func(o *Options) { o.Header = header })
}

// WithEncoding sets the CSV output charset, e.g. windows-1252 or iso-8859-1
func WithEncoding(name string) Option {
	return optionFn(func(o *Options) { o.Encoding = name })
}

// WithBOM toggles the byte order mark prefix
func WithBOM(bom bool) Option {
	return optionFn(func(o *Options) { o.BOM = bom })
}

// WithDelimiter sets the CSV field delimiter
func WithDelimiter(delimiter byte) Option {
	return optionFn(func(o *Options) { o.Delimiter = delimiter })
}

// WithCRLF terminates CSV records with \r\n
func WithCRLF(crlf bool) Option {
	return optionFn(func(o *Options) { o.CRLF = crlf })
}

// WithSortKeys toggles alphabetical JSON key order
func WithSortKeys(sortKeys bool) Option {
	return optionFn(func(o *Options) { o.SortKeys = sortKeys })
}

// WithCaseFormat renames keys to caseFormat, e.g. text.CaseFormatLowerUnderscore
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) { o.CaseFormat = caseFormat })
}

// WithTimeLayout sets the layout of time values; strftime and ISO formats are accepted
func WithTimeLayout(layout string) Option {
	return optionFn(func(o *Options) { o.TimeLayout = ftime.Layout(layout) })
}

// WithTagName sets the struct tag RecordsOf falls back to for field names
func WithTagName(name string) Option {
	return optionFn(func(o *Options) { o.TagName = name })
}

// NewOptions returns default options with opts applied
func NewOptions(opts ...Option) *Options {
	ret := &Options{
		Delimiter:  ',',
		SortKeys:   true,
		TimeLayout: DefaultTimeLayout,
		TagName:    "json",
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(ret)
		}
	}
	return ret
}

func (o *Options) key(name string) string {
	if o.CaseFormat == "" || o.CaseFormat == text.CaseFormatUndefined {
		return name
	}
	src := text.DetectCaseFormat(name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(name, o.CaseFormat)
}
