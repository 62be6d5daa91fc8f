// Package logging provides the zerolog file logger. The terminal belongs to
// the editor UI, so log lines go to a file under the configured directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FileName is the log file created inside the log directory.
const FileName = "medscribe.log"

// Config holds logging configuration.
type Config struct {
	Dir   string // empty disables logging
	Level string // debug, info, warn, error
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New opens the log file and returns a logger writing to it. The returned
// closer releases the file.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	if cfg.Dir == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(cfg.Dir, FileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("open log file: %w", err)
	}

	return NewWriter(f, cfg.Level), f, nil
}

// NewWriter builds a logger over w at the given level.
func NewWriter(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	out := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Int("pid", os.Getpid()).Logger()
}

// WithComponent returns a child logger tagged with a component name.
func WithComponent(l zerolog.Logger, component string) zerolog.Logger {
	return l.With().Str("component", component).Logger()
}
