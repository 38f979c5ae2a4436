package tabconv

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oleg578/swiftcsv"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// RecordsToCSV writes a header row followed by one row per record, fields in
// header order; a field missing from a record is written empty. When header
// is empty, WithHeader or the sorted keys of all records are used.
func RecordsToCSV(records Records, header []string, opts ...Option) (*bytes.Reader, error) {
	options := NewOptions(opts...)
	if len(header) == 0 {
		header = options.Header
	}
	if len(header) == 0 {
		header = records.Keys()
	}
	enc, err := charset(options.Encoding)
	if err != nil {
		return nil, err
	}
	buffer := new(bytes.Buffer)
	if options.BOM {
		buffer.Write(bom)
	}
	var dest io.Writer = buffer
	var encoder *transform.Writer
	if enc != nil {
		encoder = transform.NewWriter(buffer, enc.NewEncoder())
		dest = encoder
	}

	writer := swiftcsv.NewWriter(dest)
	writer.Comma = options.Delimiter
	writer.UseCRLF = options.CRLF

	names := make([]string, len(header))
	for i, name := range header {
		names[i] = options.key(name)
	}
	if err = writer.Write(names); err != nil {
		return nil, err
	}
	row := make([]string, len(header))
	for i, record := range records {
		for j, name := range header {
			row[j] = options.field(record[name])
		}
		if err = writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	if err = writer.Flush(); err != nil {
		return nil, err
	}
	if encoder != nil {
		if err = encoder.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode as %v: %w", options.Encoding, err)
		}
	}
	return bytes.NewReader(buffer.Bytes()), nil
}

// field renders a CSV cell
func (o *Options) field(value interface{}) string {
	switch actual := value.(type) {
	case bool:
		return strconv.FormatBool(actual)
	case float64:
		return strconv.FormatFloat(actual, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(actual), 'f', -1, 32)
	}
	return o.Text(value)
}

// charset resolves an IANA charset name; nil stands for utf-8
func charset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %v: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %v", name)
	}
	return enc, nil
}
