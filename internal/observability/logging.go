// Package observability provides the structured logging setup shared by
// the CLI and the report execution pipeline.
package observability

import (
	"io"
	"log/slog"
	"strings"

	"github.com/kiln-build/reportexec/internal/config"
)

// NewLogger builds a slog.Logger from the logging configuration,
// writing to w.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = NewJSONHandler(w, level)
	} else {
		handler = NewTextHandler(w, level)
	}

	return slog.New(handler)
}

// NewJSONHandler creates a JSON log handler with the specified output
// and level. JSON format suits structured log collection.
func NewJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// NewTextHandler creates a text log handler with the specified output
// and level. Text format is human-readable for interactive use.
func NewTextHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
}

// ParseLevel maps a configuration level name to a slog.Level,
// defaulting to info for unknown names.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
