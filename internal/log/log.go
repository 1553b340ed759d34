package log

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"github.com/tuanvumaihuynh/graphql-crm/internal/config"
)

// NewSlogLogger creates the process logger writing to stdout and installs it
// as the slog default.
func NewSlogLogger(cfg config.Log) *slog.Logger {
	logger := New(os.Stdout, cfg)
	slog.SetDefault(logger)
	return logger
}

// New creates a logger writing to w without touching the slog default.
func New(w io.Writer, cfg config.Log) *slog.Logger {
	var handler slog.Handler

	switch cfg.Format {
	case config.LogFormatText:
		handler = tint.NewHandler(w, &tint.Options{
			Level:       cfg.Level,
			AddSource:   cfg.AddSource,
			TimeFormat:  time.DateTime,
			ReplaceAttr: highlightErrors,
		})
	default:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	}

	return slog.New(newEnrichedHandler(handler))
}

// highlightErrors renders error attributes in red in text mode.
func highlightErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}
	if _, ok := a.Value.Any().(error); ok {
		return tint.Attr(9, a)
	}
	return a
}
