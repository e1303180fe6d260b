// Package ctxlog carries a slog.Logger through context.Context, so that
// kernels and loaders log through the logger of the registry that invoked
// them.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is an unexported type to prevent collisions with context keys from other packages.
type key struct{}

// loggerKey is the key for the slog.Logger in a context.Context.
var loggerKey = key{}

// WithLogger returns a new context with the provided logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the slog.Logger from a context. Library entry points
// may be called with a bare context, so a missing logger falls back to
// slog.Default rather than failing.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
			return logger
		}
	}
	return slog.Default()
}

// Ensure returns ctx unchanged if it already carries a logger, and otherwise
// a child context carrying fallback.
func Ensure(ctx context.Context, fallback *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return ctx
	}
	if fallback == nil {
		fallback = slog.Default()
	}
	return WithLogger(ctx, fallback)
}
