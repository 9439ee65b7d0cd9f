// Package logger provides structured logging functionality for the application
// using Go's standard library log/slog package.
package logger

import (
	"log/slog"
	"os"
	"strings"

	"github.com/csvsweep/csvsweep/internal/config"
)

// appName is stamped onto every log record by the run handler.
const appName = "csvsweep"

// Setup initializes and configures the application's logging system based on
// the provided configuration. It creates a structured logger in the configured
// format and level and sets it as the default logger for the application.
func Setup(cfg config.LogConfig) (*slog.Logger, error) {
	level := parseLevel(cfg.Level)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Create the base handler in the configured format, writing to stdout
	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	// Wrap it so every record carries the application metadata
	handler = NewRunHandler(handler, map[string]string{
		"app": appName,
	})

	logger := slog.New(handler)

	// Set this logger as the default for the application
	// This allows using the slog package functions directly (slog.Info, slog.Error, etc.)
	slog.SetDefault(logger)

	return logger, nil
}

// parseLevel converts a configured level name to a slog.Level
// (case-insensitive). An unrecognized name falls back to info and
// emits a warning through a temporary stderr logger.
func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", name,
			"default_level", "info")
		return slog.LevelInfo
	}
}
