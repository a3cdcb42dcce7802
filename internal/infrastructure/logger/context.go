package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
	actorKey     contextKey = "actor"
)

// WithContext attaches logger to ctx
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger attached to ctx, or a no-op logger
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID stores the request id in ctx and returns the enriched logger alongside it
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// WithActor stores the acting user in ctx and returns the enriched logger alongside it
func WithActor(ctx context.Context, logger *zap.Logger, actor string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, actorKey, actor)
	enriched := logger.With(zap.String("actor", actor))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves the request id from ctx
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// GetActor retrieves the acting user from ctx
func GetActor(ctx context.Context) string {
	actor, _ := ctx.Value(actorKey).(string)
	return actor
}

// WithTraceContext adds trace_id and span_id from the active span.
// The logger is returned unchanged when ctx carries no valid span.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}

// L returns the context logger with trace correlation applied.
// Usage: logger.L(ctx).Info("partner created", zap.String("partner_id", id))
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
