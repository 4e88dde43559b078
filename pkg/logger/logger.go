// Package logger configures the process-wide slog logger. Logs go to stderr
// so that stdout stays free for command output.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/Adithya-Monish-Kumar-K/phrase-index/pkg/config"
)

func Setup(cfg config.LoggingConfig) {
	slog.SetDefault(New(os.Stderr, cfg))
}

// New builds a logger writing to w without installing it.
func New(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func WithComponent(component string) *slog.Logger {
	return slog.Default().With("component", component)
}

func parseLevel(level string) slog.Level {
	switch level {
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
