package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// counterValue sums all data points of an int64 counter; missing counters are zero.
func counterValue(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		return 0
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("%s: expected Sum[int64], got %T", name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_RecordRender(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()
	meta := RenderMeta{Template: "generic"}

	m.RecordRender(ctx, meta, Outcome{Cache: CacheMiss, Bytes: 10}, 20*time.Millisecond, nil)
	m.RecordRender(ctx, meta, Outcome{Cache: CacheHit}, time.Millisecond, nil)
	m.RecordRender(ctx, meta, Outcome{Cache: CachePreview}, time.Millisecond, nil)
	m.RecordRender(ctx, meta, Outcome{}, time.Millisecond, errors.New("boom"))

	rm := collect(t, reader)
	tests := map[string]int64{
		"og.render.total":       4,
		"og.render.errors":      1,
		"og.cache.hits":         1,
		"og.cache.misses":       1,
		"og.cache.write_errors": 0,
	}
	for name, want := range tests {
		if got := counterValue(t, rm, name); got != want {
			t.Errorf("%s = %d, want %d", name, got, want)
		}
	}

	hist := findMetric(rm, "og.render.duration_ms")
	if hist == nil {
		t.Fatal("og.render.duration_ms not recorded")
	}
	data, ok := hist.Data.(metricdata.Histogram[float64])
	if !ok || len(data.DataPoints) != 1 || data.DataPoints[0].Count != 4 {
		t.Errorf("histogram = %+v", hist.Data)
	}
}

func TestMetrics_RecordCacheWriteError(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordCacheWriteError(context.Background(), RenderMeta{Template: "blog"})
	m.RecordCacheWriteError(context.Background(), RenderMeta{Template: "blog"})

	if got := counterValue(t, collect(t, reader), "og.cache.write_errors"); got != 2 {
		t.Errorf("og.cache.write_errors = %d, want 2", got)
	}
}

func TestNoopMetrics_NoPanic(t *testing.T) {
	var m Metrics = &noopMetrics{}
	m.RecordRender(context.Background(), RenderMeta{Template: "x"}, Outcome{}, 0, nil)
	m.RecordCacheWriteError(context.Background(), RenderMeta{Template: "x"})
}
