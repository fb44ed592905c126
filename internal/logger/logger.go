// Package logger holds the process-wide structured logger.
//
// Until Setup is called L returns a logger that discards everything, so
// library code can log unconditionally.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config selects level, handler format and destination. An empty File
// logs to stderr.
type Config struct {
	Level  string
	Format string
	File   string
}

var (
	mu      sync.RWMutex
	global  = discard()
	logFile *os.File
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logger: level %q: %w", s, err)
	}

	return level, nil
}

// Setup installs the global logger. The returned cleanup closes the log
// file, if any, and restores the discard logger.
func Setup(cfg Config) (func() error, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	var (
		w io.Writer = os.Stderr
		f *os.File
	)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}

		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, err
		}
		w = f
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}

			return a
		},
	}

	var h slog.Handler
	switch cfg.Format {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	default:
		if f != nil {
			f.Close()
		}

		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}

	mu.Lock()
	global = slog.New(h)
	logFile = f
	mu.Unlock()

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		global = discard()

		return cerr
	}

	return cleanup, nil
}

// L returns the global logger.
func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()

	return global
}
