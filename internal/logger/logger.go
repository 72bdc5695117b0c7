package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Config struct {
	File  string
	Level string
}

// Init installs the default slog logger. Logs go to cfg.File because the
// terminal belongs to the UI; if the file cannot be opened they are dropped.
// LOG_FORMAT=json switches to the JSON handler. The returned func closes the
// log file.
func Init(cfg Config) func() {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var w io.Writer = io.Discard
	closeFn := func() {}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err == nil {
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}

	var handler slog.Handler
	if os.Getenv("LOG_FORMAT") == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
	return closeFn
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// NewRequestLogger returns a logger tagged with a fresh request id.
func NewRequestLogger() *slog.Logger {
	return slog.With("requestId", uuid.Must(uuid.NewV7()).String())
}
