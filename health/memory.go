package health

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"runtime/debug"
)

// HeapCheckerConfig configures a HeapChecker.
type HeapCheckerConfig struct {
	// Limit is the heap size the thresholds are measured against.
	// Default: the runtime soft memory limit (GOMEMLIMIT)
	Limit uint64

	// Warning is the fraction of Limit that degrades the check.
	// Default: 0.8
	Warning float64

	// Critical is the fraction of Limit that fails the check.
	// Default: 0.95
	Critical float64
}

// HeapChecker watches heap usage. Rasterizing large canvases allocates
// heavily, so a heap near its limit is the first sign of overload.
type HeapChecker struct {
	config HeapCheckerConfig
}

// NewHeapChecker creates a heap checker.
func NewHeapChecker(config HeapCheckerConfig) *HeapChecker {
	// Apply defaults
	if config.Warning <= 0 || config.Warning >= 1 {
		config.Warning = 0.8
	}
	if config.Critical <= 0 || config.Critical >= 1 {
		config.Critical = 0.95
	}
	if config.Critical < config.Warning {
		config.Critical = config.Warning
	}
	return &HeapChecker{config: config}
}

// Name returns "heap".
func (h *HeapChecker) Name() string { return "heap" }

// Check compares the live heap with the limit.
func (h *HeapChecker) Check(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Unhealthy("context done", err)
	}

	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	details := map[string]any{
		"heap_alloc": stats.HeapAlloc,
		"heap_sys":   stats.HeapSys,
		"num_gc":     stats.NumGC,
		"goroutines": runtime.NumGoroutine(),
	}

	limit := h.limit()
	if limit == 0 {
		return Healthy("no memory limit set").WithDetails(details)
	}
	usage := float64(stats.HeapAlloc) / float64(limit)
	details["limit"] = limit
	details["usage_percent"] = usage * 100

	msg := fmt.Sprintf("heap at %.1f%% of limit", usage*100)
	switch {
	case usage >= h.config.Critical:
		return Unhealthy(msg, ErrCheckFailed).WithDetails(details)
	case usage >= h.config.Warning:
		return Degraded(msg).WithDetails(details)
	default:
		return Healthy(msg).WithDetails(details)
	}
}

// limit returns the configured limit, falling back to the runtime soft
// limit. Zero means unlimited.
func (h *HeapChecker) limit() uint64 {
	if h.config.Limit > 0 {
		return h.config.Limit
	}
	soft := debug.SetMemoryLimit(-1)
	if soft <= 0 || soft == math.MaxInt64 {
		return 0
	}
	return uint64(soft)
}

// Ensure HeapChecker implements Checker
var _ Checker = (*HeapChecker)(nil)
