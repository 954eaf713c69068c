package common

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Fields represents structured logging fields.
type Fields map[string]any

// ParseLevel converts a configured level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: log level %q", ErrInvalidConfig, level)
	}
}

// SetupLogger configures the global logger with appropriate settings.
func SetupLogger(level slog.Level, format string) error {
	return setupLogger(os.Stderr, level, format)
}

func setupLogger(w io.Writer, level slog.Level, format string) error {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "console", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, format)
	}

	slog.SetDefault(slog.New(handler))

	return nil
}

// LogError logs an error with additional context.
func LogError(err error, msg string, fields Fields) {
	attrs := make([]slog.Attr, 0, len(fields)+1)
	attrs = append(attrs, slog.String("error", err.Error()))

	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	slog.LogAttrs(context.Background(), slog.LevelError, msg, attrs...)
}

// LogDebug logs a debug message with fields.
func LogDebug(msg string, fields Fields) {
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}

	slog.LogAttrs(context.Background(), slog.LevelDebug, msg, attrs...)
}
