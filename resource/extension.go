package resource

import (
	"context"
	"log/slog"
	"strings"
)

// DefaultExtension is used for unknown content types
const DefaultExtension = "csv"

var extensions = map[string]string{
	"csv": "csv",
	"xls": "xls",
	"vnd.openxmlformats-officedocument.spreadsheetml.sheet": "xlsx",
}

// Extension returns the file extension for an HTTP content type, e.g.
// text/csv; charset=utf-8 gives csv. Unknown types give DefaultExtension.
func Extension(contentType string) string {
	return extension(contentType, slog.Default())
}

func extension(contentType string, logger *slog.Logger) string {
	subtype := ""
	if _, after, ok := strings.Cut(contentType, "/"); ok {
		subtype, _, _ = strings.Cut(after, ";")
		subtype = strings.ToLower(strings.TrimSpace(subtype))
	}
	if ext, ok := extensions[subtype]; ok {
		return ext
	}
	if logger != nil {
		logger.LogAttrs(context.Background(), slog.LevelInfo, "content type not found, using default extension",
			slog.String("contentType", contentType), slog.String("extension", DefaultExtension))
	}
	return DefaultExtension
}
