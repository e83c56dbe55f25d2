package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger stores logger in ctx. A nil logger stores the fallback logger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = &fallback
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or an info-level stderr
// logger when there is none.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return &fallback
}

// WithRunID records the run identifier in ctx and on its logger.
func WithRunID(ctx context.Context, runID string) context.Context {
	ctx = context.WithValue(ctx, runIDKey, runID)
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("run_id", runID) })
}

// RunID returns the run identifier recorded by WithRunID, or "".
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// WithFile tags the context logger with the input file being read.
func WithFile(ctx context.Context, path string) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Str("file", path) })
}

// WithRow tags the context logger with a 1-based data row number.
func WithRow(ctx context.Context, row int) context.Context {
	return with(ctx, func(c zerolog.Context) zerolog.Context { return c.Int("row", row) })
}

func with(ctx context.Context, add func(zerolog.Context) zerolog.Context) context.Context {
	logger := add(FromContext(ctx).With()).Logger()
	return context.WithValue(ctx, loggerKey, &logger)
}
