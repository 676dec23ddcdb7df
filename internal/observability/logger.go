package observability

import (
	"log/slog"
	"os"
	"strings"

	"github.com/World-Meteorological-Organization/cap2geojson/internal/config"
)

// NewLogger builds the service logger from LOG_LEVEL and LOG_FORMAT. The
// default is JSON at info level; any unrecognized value falls back to the
// default rather than failing startup.
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.LogFormat) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
