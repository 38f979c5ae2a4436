package resource

import (
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const exportPrefix = "export?format="

// Option configures Path
type Option func(o *Options)

// Options represents downloaded resource naming options
type Options struct {
	// Header holds the HTTP response headers of the resource
	Header http.Header
	// ID identifies the resource, used when no file name is available
	ID string
	// NameFromID names the file after ID even when headers carry a file name
	NameFromID bool
	// Logger receives notices about unknown content types
	Logger *slog.Logger
}

// WithHeader sets the HTTP response headers
func WithHeader(header http.Header) Option {
	return func(o *Options) { o.Header = header }
}

// WithID sets the resource id
func WithID(id string) Option {
	return func(o *Options) { o.ID = id }
}

// WithNameFromID names the file after the resource id
func WithNameFromID(nameFromID bool) Option {
	return func(o *Options) { o.NameFromID = nameFromID }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// Path returns the file path a downloaded resource is saved to. A path that
// is not an existing directory is returned as is. For a directory, the file
// name comes from the Content-Disposition header, or the resource id when
// absent or when WithNameFromID is set; a spreadsheet export name such as
// export?format=xlsx becomes <id>.xlsx, and a name without an extension gets
// one derived from the Content-Type header.
func Path(path string, opts ...Option) string {
	options := &Options{Header: http.Header{}, Logger: slog.Default()}
	for _, opt := range opts {
		opt(options)
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path
	}

	name := options.ID
	if !options.NameFromID {
		if disposed := dispositionName(options.Header.Get("Content-Disposition")); disposed != "" {
			name = disposed
		}
	}
	switch {
	case strings.HasPrefix(name, exportPrefix):
		name = options.ID + "." + strings.TrimPrefix(name, exportPrefix)
	case !strings.Contains(name, "."):
		name = name + "." + extension(options.Header.Get("Content-Type"), options.Logger)
	}
	return filepath.Join(path, name)
}

func dispositionName(disposition string) string {
	if disposition == "" {
		return ""
	}
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		return params["filename"]
	}
	if _, after, ok := strings.Cut(disposition, "="); ok {
		return strings.Trim(strings.TrimSpace(after), `"`)
	}
	return ""
}
