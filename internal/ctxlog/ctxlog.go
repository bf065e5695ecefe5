// Package ctxlog carries a slog.Logger through context.Context so library
// code can log without holding a logger field.
package ctxlog

import (
	"context"
	"log/slog"
)

type key struct{}

// Into returns a child context carrying logger.
func Into(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, key{}, logger)
}

// From extracts the logger carried by ctx, falling back to slog.Default()
// so callers that never installed one still get sane output.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(key{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
