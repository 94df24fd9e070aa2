package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type ctxKey int

// loggerCtxKey carries the command logger through context.
const loggerCtxKey ctxKey = iota

// WithLogger returns a context carrying logger. The root command seeds
// this once at startup so subcommands and their helpers share one
// configured logger.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerCtxKey, logger)
}

// FromContext returns the logger carried by ctx. A nil context or a
// context without a logger yields the process default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerCtxKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
