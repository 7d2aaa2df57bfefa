package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome is what a render step reports back to telemetry.
type Outcome struct {
	Cache string // CacheHit, CacheMiss or CachePreview
	Bytes int    // size of the encoded image
}

// Metrics records render and cache metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly and never block on export.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordRender counts a render, its cache outcome and its duration.
	RecordRender(ctx context.Context, meta RenderMeta, out Outcome, duration time.Duration, err error)

	// RecordCacheWriteError counts a failed background cache write.
	RecordCacheWriteError(ctx context.Context, meta RenderMeta)
}

type metricsImpl struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	cacheHits    metric.Int64Counter
	cacheMisses  metric.Int64Counter
	writeErrors  metric.Int64Counter
}

// NewMetrics creates the render instruments on meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	m := &metricsImpl{}
	counters := []struct {
		dst              *metric.Int64Counter
		name, desc, unit string
	}{
		{&m.totalCount, "og.render.total", "Total number of render requests", "{request}"},
		{&m.errorCount, "og.render.errors", "Total number of failed render requests", "{error}"},
		{&m.cacheHits, "og.cache.hits", "Renders served from the image cache", "{hit}"},
		{&m.cacheMisses, "og.cache.misses", "Renders that missed the image cache", "{miss}"},
		{&m.writeErrors, "og.cache.write_errors", "Background cache writes that failed", "{error}"},
	}
	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name, metric.WithDescription(c.desc), metric.WithUnit(c.unit))
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	hist, err := meter.Float64Histogram(
		"og.render.duration_ms",
		metric.WithDescription("Render duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}
	m.durationHist = hist
	return m, nil
}

func (m *metricsImpl) RecordRender(ctx context.Context, meta RenderMeta, out Outcome, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("og.template", meta.Template))

	m.totalCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	switch out.Cache {
	case CacheHit:
		m.cacheHits.Add(ctx, 1, opt)
	case CacheMiss:
		m.cacheMisses.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Microseconds())/1000, opt)
}

func (m *metricsImpl) RecordCacheWriteError(ctx context.Context, meta RenderMeta) {
	m.writeErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("og.template", meta.Template)))
}

type noopMetrics struct{}

func (m *noopMetrics) RecordRender(context.Context, RenderMeta, Outcome, time.Duration, error) {}
func (m *noopMetrics) RecordCacheWriteError(context.Context, RenderMeta)                      {}
