package app

import (
	"io"
	"log/slog"
)

// newLogger creates a logger from validated settings. It does not set the
// global logger, so every App logs in isolation.
func newLogger(s *Settings, outW io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch s.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
