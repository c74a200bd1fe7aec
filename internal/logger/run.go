package logger

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey string

const runIDKey ctxKey = "runID"

// NewRunID creates a correlation id for one loot generation run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID returns a context carrying the run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext extracts the run id from ctx, if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}

// EnsureRunID returns ctx unchanged if it already carries a run id, or a
// child context with a fresh one.
func EnsureRunID(ctx context.Context) context.Context {
	if _, ok := RunIDFromContext(ctx); ok {
		return ctx
	}
	return WithRunID(ctx, NewRunID())
}
