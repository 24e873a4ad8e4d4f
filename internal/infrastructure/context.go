package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NewTraceID returns a random trace ID for work that starts outside an
// HTTP request
func NewTraceID() string {
	return uuid.NewString()
}

// EnsureTraceID returns ctx unchanged when it already carries a trace ID
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}

// WithComponent tags logger output with the emitting component
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	return logger.With(slog.String("component", component))
}

// WithError attaches err to logger output. A nil err leaves logger as is.
func WithError(logger *slog.Logger, err error) *slog.Logger {
	if err == nil {
		return logger
	}
	return logger.With(slog.String("error", err.Error()))
}
