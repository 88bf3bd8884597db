package config

import (
	"io"
	"log/slog"
)

// SlogLevel maps the configured level name, unknown names fall back to info.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
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

// NewSlogHandler builds the text or JSON handler writing to w.
func (c LogConfig) NewSlogHandler(w io.Writer) slog.Handler {
	options := &slog.HandlerOptions{Level: c.SlogLevel()}

	if c.Format == "json" {
		return slog.NewJSONHandler(w, options)
	}

	return slog.NewTextHandler(w, options)
}
