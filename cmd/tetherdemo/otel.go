package main

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the demo server.
const defaultTracerName = "tetherdemo"

// traceConfig configures frame-dispatch tracing.
type traceConfig struct {
	// TracerName is the name of the tracer (default: "tetherdemo").
	TracerName string

	// Filter determines which frames to trace. Return true to trace the
	// frame, false to skip it. If nil, all frames are traced.
	Filter func(f clientFrame) bool

	// AttributeExtractor extracts custom attributes from a frame. Called
	// once per traced frame.
	AttributeExtractor func(f clientFrame) []attribute.KeyValue

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// traceOption configures the frame tracer.
type traceOption func(*traceConfig)

// withTracerName sets the tracer name.
func withTracerName(name string) traceOption {
	return func(c *traceConfig) {
		c.TracerName = name
	}
}

// withFrameFilter sets a filter deciding which frames get a span.
func withFrameFilter(filter func(f clientFrame) bool) traceOption {
	return func(c *traceConfig) {
		c.Filter = filter
	}
}

// withFrameAttributes sets a custom attribute extractor.
func withFrameAttributes(extractor func(f clientFrame) []attribute.KeyValue) traceOption {
	return func(c *traceConfig) {
		c.AttributeExtractor = extractor
	}
}

func defaultTraceConfig() traceConfig {
	return traceConfig{
		TracerName: defaultTracerName,
	}
}

// frameTracer traces the application of client frames to a session's
// view-model: one span per dispatched frame, named after the frame type and
// carrying the session ID. The tracer is resolved from the global
// OpenTelemetry tracer provider, so spans are a no-op until main configures
// a real provider.
//
// A nil *frameTracer is valid and applies frames untraced.
type frameTracer struct {
	config traceConfig
}

// newFrameTracer builds a frame tracer from the global tracer provider.
func newFrameTracer(opts ...traceOption) *frameTracer {
	config := defaultTraceConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)
	return &frameTracer{config: config}
}

// dispatch runs apply inside a span, recording its error and setting the
// span status. The context handed to apply carries the span so downstream
// calls can propagate it.
func (t *frameTracer) dispatch(ctx context.Context, sessionID string, f clientFrame, apply func(ctx context.Context) error) error {
	if t == nil {
		return apply(ctx)
	}
	if t.config.Filter != nil && !t.config.Filter(f) {
		return apply(ctx)
	}

	attrs := []attribute.KeyValue{
		attribute.String("tether.session_id", sessionID),
		attribute.String("tether.frame_type", f.Type),
	}
	if t.config.AttributeExtractor != nil {
		attrs = append(attrs, t.config.AttributeExtractor(f)...)
	}

	spanCtx, span := t.config.tracer.Start(
		ctx,
		spanName(f),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(time.Now()),
	)
	defer span.End()

	err := apply(spanCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return err
}

// spanName derives the span name from the frame type.
func spanName(f clientFrame) string {
	if f.Type == "" {
		return "tether.frame"
	}
	return fmt.Sprintf("tether.%s", f.Type)
}
