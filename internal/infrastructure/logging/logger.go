// Package logging provides structured logging utilities.
//
// Text logs are formatted in Maven-style with colors:
// [LEVEL] [SYSTEM] [HH:MM:SS] message key=value
//
// Set format to "json" for machine-readable output.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
)

// ParseLevel maps a config level name to a slog level. Unknown names are
// treated as info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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

// NewLogger creates a structured logger based on config
func NewLogger(cfg config.LoggingConfig) *slog.Logger {
	return NewLoggerTo(os.Stdout, cfg)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = NewMavenHandler(w, opts)
	}

	return slog.New(handler)
}

// NewLoggerWithSystem creates a logger with a system prefix (e.g., "api", "features")
func NewLoggerWithSystem(cfg config.LoggingConfig, system string) *slog.Logger {
	return NewLogger(cfg).With("system", system)
}
