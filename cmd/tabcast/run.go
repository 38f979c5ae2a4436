package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/oleg578/swiftcsv"
	"github.com/viant/tabconv"
	"github.com/viant/tabconv/conv"
	"github.com/viant/tabconv/resource"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Run reads the configured CSV input, casts its typed columns and writes
// the records as CSV or JSON
func Run(ctx context.Context, cfg *Config, stdin io.Reader, stdout io.Writer, logger *slog.Logger) error {
	types, err := cfg.ColumnTypes()
	if err != nil {
		return err
	}
	source, header, err := open(ctx, cfg.Input, stdin)
	if err != nil {
		return err
	}
	defer source.Close()

	records, columns, err := readRecords(source, cfg.Delimiter[0])
	if err != nil {
		return fmt.Errorf("failed to read %v: %w", inputName(cfg.Input), err)
	}
	options := cfg.Options(logger)
	for i, record := range records {
		records[i] = conv.CastRecord(record, types, options...)
	}
	logger.Debug("cast records", slog.Int("records", len(records)), slog.Int("columns", len(columns)))

	output, err := encode(cfg, records, columns)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		_, err = io.Copy(stdout, output)
		return err
	}
	dest := outputPath(cfg, header, logger)
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err = io.Copy(file, output); err != nil {
		_ = file.Close()
		return err
	}
	logger.Info("written", slog.String("path", dest), slog.Int("records", len(records)))
	return file.Close()
}

// open returns the input stream and, for http(s) sources, the response headers
func open(ctx context.Context, input string, stdin io.Reader) (io.ReadCloser, http.Header, error) {
	switch {
	case input == "":
		return io.NopCloser(stdin), http.Header{}, nil
	case strings.HasPrefix(input, "http://"), strings.HasPrefix(input, "https://"):
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
		if err != nil {
			return nil, nil, err
		}
		response, err := http.DefaultClient.Do(request)
		if err != nil {
			return nil, nil, err
		}
		if response.StatusCode != http.StatusOK {
			_ = response.Body.Close()
			return nil, nil, fmt.Errorf("failed to download %v: %v", input, response.Status)
		}
		return response.Body, response.Header, nil
	}
	file, err := os.Open(input)
	if err != nil {
		return nil, nil, err
	}
	return file, http.Header{}, nil
}

// readRecords reads a header row followed by data rows, dropping a leading
// byte order mark
func readRecords(source io.Reader, delimiter byte) (tabconv.Records, []string, error) {
	reader := swiftcsv.NewReader(transform.NewReader(source, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = delimiter
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	header = append([]string(nil), header...)
	var records tabconv.Records
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, header, nil
		}
		if err != nil {
			return nil, nil, err
		}
		record := make(tabconv.Record, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records = append(records, record)
	}
}

func encode(cfg *Config, records tabconv.Records, header []string) (io.Reader, error) {
	opts := []tabconv.Option{tabconv.WithHeader(header...)}
	if cfg.TimeFormat != "" {
		opts = append(opts, tabconv.WithTimeLayout(cfg.TimeFormat))
	}
	if cfg.Format == "json" {
		return tabconv.RecordsToJSON(records, opts...)
	}
	opts = append(opts,
		tabconv.WithDelimiter(cfg.Delimiter[0]),
		tabconv.WithEncoding(cfg.Encoding),
		tabconv.WithBOM(cfg.BOM))
	return tabconv.RecordsToCSV(records, header, opts...)
}

// outputPath names the output file; a directory output gets the downloaded
// file name, or the input base name, with the output format extension
func outputPath(cfg *Config, header http.Header, logger *slog.Logger) string {
	id := strings.TrimSuffix(filepath.Base(inputName(cfg.Input)), filepath.Ext(cfg.Input))
	dest := resource.Path(cfg.Output, resource.WithID(id), resource.WithHeader(header), resource.WithLogger(logger))
	if dest == cfg.Output {
		return dest
	}
	return strings.TrimSuffix(dest, filepath.Ext(dest)) + "." + cfg.Format
}

func inputName(input string) string {
	if input == "" {
		return "stdin"
	}
	return input
}
