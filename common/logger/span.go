package logger

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "invoicely.app/api"

// StartTaskSpan starts a consumer span for a task read off the notification
// stream. traceID is the hex trace id of the request that enqueued the task;
// when it parses, the span joins that trace and links back to it, so an
// invitation email shows up under the POST /invite request that caused it.
// An empty or malformed traceID starts a fresh root span.
func StartTaskSpan(ctx context.Context, traceID, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	opts := []trace.SpanStartOption{
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(attrs...),
	}

	if remote, ok := remoteSpanContext(traceID); ok {
		ctx = trace.ContextWithRemoteSpanContext(ctx, remote)
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: remote}))
	}

	return Tracer().Start(ctx, name, opts...)
}

func remoteSpanContext(traceID string) (trace.SpanContext, bool) {
	if traceID == "" {
		return trace.SpanContext{}, false
	}
	tid, err := trace.TraceIDFromHex(traceID)
	if err != nil {
		return trace.SpanContext{}, false
	}
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	}), true
}

// Tracer is the tracer every package in this module starts spans from.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
