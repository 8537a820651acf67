// Package logging provides structured logging for the dashboard.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a logger writing to stderr.
// Format is "json" or "text"; level is "debug", "info", "warn" or "error".
func NewLogger(format, level string) *slog.Logger {
	return NewLoggerWithWriter(os.Stderr, format, level)
}

// NewLoggerWithWriter creates a logger that writes to w. Useful for tests and
// for discarding output while the terminal UI owns the screen.
func NewLoggerWithWriter(w io.Writer, format, level string) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
