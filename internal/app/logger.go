package app

import (
	"io"
	"log/slog"
)

// newLogger creates and configures a new slog.Logger instance writing to
// logW. It does not set the global logger, allowing for isolated logger
// instances. Unknown levels fall back to info; debug adds source locations.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(logW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(logW, handlerOpts)
	}
	return slog.New(handler)
}
