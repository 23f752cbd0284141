// Package logging builds *slog.Logger values backed by charmbracelet/log.
//
// Library packages accept a *slog.Logger and fall back to slog.Default();
// the CLI installs the logger built here as the default.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures a logger.
type Options struct {
	// Level is one of "debug", "info", "warn", "error". Unknown values mean info.
	Level string

	// Output defaults to os.Stderr.
	Output io.Writer

	// Prefix is printed before every message.
	Prefix string

	// Timestamps enables timestamps on every line.
	Timestamps bool

	// JSON switches the formatter to JSON lines.
	JSON bool
}

// ParseLevel maps a level name to a charmbracelet/log level.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// NewHandler returns the charmbracelet/log logger used as slog handler.
func NewHandler(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	handler := log.NewWithOptions(out, log.Options{
		ReportTimestamp: opts.Timestamps,
		Prefix:          opts.Prefix,
		Level:           ParseLevel(opts.Level),
	})
	if opts.JSON {
		handler.SetFormatter(log.JSONFormatter)
	}
	return handler
}

// New creates a slog logger writing through charmbracelet/log.
func New(opts Options) *slog.Logger {
	return slog.New(NewHandler(opts))
}

// Install makes logger the process default and returns the previous one.
func Install(logger *slog.Logger) *slog.Logger {
	previous := slog.Default()
	slog.SetDefault(logger)
	return previous
}

// contextKey is the type for context keys used by this package.
type contextKey struct{}

// FromContext retrieves a logger from ctx, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// WithLogger returns a context carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// OrDefault returns logger, or slog.Default() when it is nil.
func OrDefault(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
