package observe

import (
	"context"
	"time"
)

// RenderFunc is one render step as seen by telemetry.
type RenderFunc func(ctx context.Context, meta RenderMeta) (Outcome, error)

// Middleware wraps render steps with tracing, metrics and logging.
//
// Contract:
//   - Concurrency: Wrap() returns a thread-safe RenderFunc.
//   - Context: the wrapped function receives a context carrying the span.
//   - Errors: errors from the wrapped function are recorded and returned unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware from its components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// NopMiddleware returns a Middleware that records nothing.
func NopMiddleware() *Middleware {
	return NewMiddleware(newNoopTracer(), &noopMetrics{}, NopLogger())
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// Logger returns the logger used for render lines.
func (m *Middleware) Logger() Logger {
	return m.logger
}

// Wrap wraps fn with a span, render metrics and one log line per call.
// Failures log at error level, hits at debug level, everything else at info.
func (m *Middleware) Wrap(fn RenderFunc) RenderFunc {
	return func(ctx context.Context, meta RenderMeta) (Outcome, error) {
		ctx, span := m.tracer.StartSpan(ctx, meta)
		start := time.Now()

		out, err := fn(ctx, meta)

		duration := time.Since(start)
		m.tracer.EndSpan(span, out, err)
		m.metrics.RecordRender(ctx, meta, out, duration, err)

		log := m.logger.WithRender(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Microseconds()) / 1000},
			{Key: "cache", Value: out.Cache},
		}
		switch {
		case err != nil:
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			log.Error(ctx, "render failed", fields...)
		case out.Cache == CacheHit:
			log.Debug(ctx, "render served from cache", fields...)
		default:
			fields = append(fields, Field{Key: "bytes", Value: out.Bytes})
			log.Info(ctx, "render completed", fields...)
		}
		return out, err
	}
}

// CacheWriteFailed records a background cache write that gave up.
func (m *Middleware) CacheWriteFailed(ctx context.Context, meta RenderMeta, err error) {
	m.metrics.RecordCacheWriteError(ctx, meta)
	m.logger.WithRender(meta).Warn(ctx, "cache write failed", Field{Key: "error", Value: err.Error()})
}
