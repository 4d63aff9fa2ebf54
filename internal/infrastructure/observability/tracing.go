package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "personachat/server"

// Span aliases the OpenTelemetry span so callers avoid a direct otel import.
type Span = trace.Span

// GetTracer returns the tracer for the chat service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// TurnAttributes returns common attributes for chat turn spans.
func TurnAttributes(personaKey, mode string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("turn.persona", personaKey),
		attribute.String("turn.mode", mode),
	}
}

// StartTurnSpan starts a new span for one chat turn.
func StartTurnSpan(ctx context.Context, personaKey, mode string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "chat.turn",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(TurnAttributes(personaKey, mode)...),
	)
	return ctx, span
}

// StartCompletionSpan starts a new span for a completion gateway call.
func StartCompletionSpan(ctx context.Context, model string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "completion.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("llm.model", model)),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// AddConversationAttr attaches the resolved conversation ID to a span.
func AddConversationAttr(span trace.Span, conversationID string) {
	if span == nil || conversationID == "" {
		return
	}
	span.SetAttributes(attribute.String("conversation.id", conversationID))
}
