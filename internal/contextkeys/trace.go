package contextkeys

import (
	"context"

	"github.com/google/uuid"
)

type traceIDKeyType struct{}

var traceIDKey = traceIDKeyType{}

// TraceIDHeader — заголовок, в котором trace id ходит между клиентом и mock API.
const TraceIDHeader = "X-Trace-ID"

// ContextWithTraceID помещает trace_id в контекст.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext извлекает trace_id, пустая строка если его нет.
func TraceIDFromContext(ctx context.Context) string {
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

// EnsureTraceID возвращает контекст с trace_id, генерируя новый при отсутствии.
func EnsureTraceID(ctx context.Context) (context.Context, string) {
	if traceID := TraceIDFromContext(ctx); traceID != "" {
		return ctx, traceID
	}
	traceID := uuid.New().String()
	return ContextWithTraceID(ctx, traceID), traceID
}
