package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// Cache outcomes reported in RenderMeta and Outcome.
const (
	CacheHit     = "HIT"
	CacheMiss    = "MISS"
	CachePreview = "PREVIEW"
)

// RenderMeta describes one render request for telemetry purposes.
type RenderMeta struct {
	Template string // template name (required)
	Key      string // cache key; empty until computed
	Width    int
	Height   int
	Preview  bool // cache bypassed
}

// SpanName returns the span name for this render: og.render.<template>.
func (m RenderMeta) SpanName() string {
	return "og.render." + m.Template
}

// Validate reports whether the metadata is usable.
func (m RenderMeta) Validate() error {
	if m.Template == "" {
		return ErrMissingTemplate
	}
	return nil
}

func (m RenderMeta) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("og.template", m.Template),
		attribute.Bool("og.preview", m.Preview),
	}
	if m.Key != "" {
		attrs = append(attrs, attribute.String("og.cache_key", m.Key))
	}
	if m.Width > 0 && m.Height > 0 {
		attrs = append(attrs, attribute.Int("og.width", m.Width), attribute.Int("og.height", m.Height))
	}
	return attrs
}

// Tracer wraps OpenTelemetry tracing with render-specific spans.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: StartSpan returns a context carrying the new span.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a span for a render.
	StartSpan(ctx context.Context, meta RenderMeta) (context.Context, trace.Span)

	// EndSpan records the outcome and error, then ends the span.
	EndSpan(span trace.Span, out Outcome, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer wraps an OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

func (t *tracerImpl) StartSpan(ctx context.Context, meta RenderMeta) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(meta.attributes()...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

func (t *tracerImpl) EndSpan(span trace.Span, out Outcome, err error) {
	if out.Cache != "" {
		span.SetAttributes(attribute.String("og.cache", out.Cache))
	}
	if out.Bytes > 0 {
		span.SetAttributes(attribute.Int("og.bytes", out.Bytes))
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

type noopTracer struct {
	noop trace.Tracer
}

func newNoopTracer() Tracer {
	return &noopTracer{noop: tracenoop.NewTracerProvider().Tracer("noop")}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta RenderMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, _ Outcome, _ error) {
	span.End()
}
