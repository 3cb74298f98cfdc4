package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys.
const (
	AttrHTTPMethod     = "http.request.method"
	AttrHTTPURL        = "url.full"
	AttrHTTPStatusCode = "http.response.status_code"
	AttrRequestID      = "lightdesk.request_id"
	AttrOperation      = "lightdesk.operation"
	AttrRevision       = "lightdesk.revision"
	AttrCacheHit       = "lightdesk.cache_hit"
	AttrErrorMessage   = "error.message"
)

// Span names.
const (
	SpanPrefixAPI  = "api."
	SpanPrefixSync = "sync."
)

// Event names.
const (
	EventStatusReceived = "status.received"
)

// StartClientSpan starts a client span for an outgoing call to the lighting service.
func StartClientSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(AttrOperation, op))
	return Tracer().Start(ctx, SpanPrefixAPI+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// StartInternalSpan starts a span for a controller action.
func StartInternalSpan(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(AttrOperation, op))
	return Tracer().Start(ctx, SpanPrefixSync+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// EndSpan records err, if any, sets the span status and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
