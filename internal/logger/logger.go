// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// L is the global logger. It discards everything until Init is called.
var L = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures Init.
type Options struct {
	Level  string    // debug, info, warn or error. Default: warn
	Format string    // text (styled, default) or json
	Writer io.Writer // default: os.Stderr
}

// Init replaces L according to opts.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	L = l
	return nil
}

// New builds a logger without touching L.
func New(opts Options) (*slog.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelWarn
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("logger: invalid level %q", opts.Level)
		}
	}

	switch strings.ToLower(opts.Format) {
	case "", "text":
		h := log.NewWithOptions(w, log.Options{
			Level:           log.Level(level),
			Prefix:          "gogscan",
			ReportTimestamp: level <= slog.LevelDebug,
		})
		return slog.New(h), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})), nil
	default:
		return nil, fmt.Errorf("logger: invalid format %q (want text or json)", opts.Format)
	}
}
