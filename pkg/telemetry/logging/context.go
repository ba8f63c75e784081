package logging

import (
	"context"
	"log/slog"
)

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	frameworkKey contextKey = "framework"
)

// WithRunID returns a context carrying the run ID for log correlation.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithFramework returns a context carrying the framework ID for log
// correlation.
func WithFramework(ctx context.Context, frameworkID string) context.Context {
	return context.WithValue(ctx, frameworkKey, frameworkID)
}

// RunIDFrom extracts the run ID from the context, if present.
func RunIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// FromContext returns a logger annotated with whatever correlation fields
// the context carries.
func FromContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if id, ok := ctx.Value(runIDKey).(string); ok && id != "" {
		logger = logger.With("run_id", id)
	}
	if fw, ok := ctx.Value(frameworkKey).(string); ok && fw != "" {
		logger = logger.With("framework", fw)
	}
	return logger
}
