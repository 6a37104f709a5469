// Package logging configures the structured logger.
package logging

import (
	"context"
	"io"
	"os"

	charmlog "github.com/charmbracelet/log"
)

// Config holds the logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	JSON   bool
	Output io.Writer
}

// DefaultConfig logs warnings and errors to stderr.
func DefaultConfig() *Config {
	return &Config{
		Level:  "warn",
		Output: os.Stderr,
	}
}

// New builds a logger from cfg. Unknown levels fall back to warn.
func New(cfg *Config) *charmlog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	level, err := charmlog.ParseLevel(cfg.Level)
	if err != nil {
		level = charmlog.WarnLevel
	}
	logger := charmlog.NewWithOptions(out, charmlog.Options{
		Level:           level,
		ReportTimestamp: cfg.JSON,
		Prefix:          "vendorctl",
	})
	if cfg.JSON {
		logger.SetFormatter(charmlog.JSONFormatter)
	}
	return logger
}

// Discard returns a logger that writes nothing.
func Discard() *charmlog.Logger {
	return charmlog.NewWithOptions(io.Discard, charmlog.Options{Level: charmlog.FatalLevel})
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger *charmlog.Logger) context.Context {
	return charmlog.WithContext(ctx, logger)
}

// FromContext returns the logger attached to ctx, or a discarding logger.
func FromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(charmlog.ContextKey).(*charmlog.Logger); ok && l != nil {
		return l
	}
	return Discard()
}
