package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/ogimage/cache"
	"github.com/jonwraymond/ogimage/fonts"
	"github.com/jonwraymond/ogimage/resilience"
)

// readier is implemented by stores that must prepare storage before use.
type readier interface {
	Ready(ctx context.Context) error
}

// CacheCheckerConfig configures a CacheChecker.
type CacheCheckerConfig struct {
	Store cache.Store

	// SoftLimit degrades the check once the cache holds more bytes.
	// The cache never evicts, so growth needs an operator.
	// Zero disables the limit.
	SoftLimit int64
}

// CacheChecker verifies the image cache is usable and reports its size.
type CacheChecker struct {
	config CacheCheckerConfig
}

// NewCacheChecker creates a cache checker.
func NewCacheChecker(config CacheCheckerConfig) *CacheChecker {
	return &CacheChecker{config: config}
}

// Name returns "cache".
func (c *CacheChecker) Name() string { return "cache" }

// Check prepares the store if needed and reads its stats.
func (c *CacheChecker) Check(ctx context.Context) Result {
	if c.config.Store == nil {
		return Unhealthy("no cache store configured", cache.ErrNilStore)
	}
	if r, ok := c.config.Store.(readier); ok {
		if err := r.Ready(ctx); err != nil {
			return Unhealthy("cache storage unavailable", err)
		}
	}

	stats := c.config.Store.Stats(ctx)
	details := map[string]any{
		"entries":     stats.Entries,
		"total_bytes": stats.TotalBytes,
	}
	if c.config.SoftLimit > 0 && stats.TotalBytes > c.config.SoftLimit {
		return Degraded(fmt.Sprintf("cache holds %d bytes, over the %d byte limit",
			stats.TotalBytes, c.config.SoftLimit)).WithDetails(details)
	}
	return Healthy(fmt.Sprintf("%d cached images", stats.Entries)).WithDetails(details)
}

// FontsChecker verifies the font table loads.
type FontsChecker struct {
	provider fonts.Provider
}

// NewFontsChecker creates a fonts checker. Pass the same provider the
// renderer uses so a cached table is not loaded twice.
func NewFontsChecker(provider fonts.Provider) *FontsChecker {
	return &FontsChecker{provider: provider}
}

// Name returns "fonts".
func (c *FontsChecker) Name() string { return "fonts" }

// Check loads the font table.
func (c *FontsChecker) Check(ctx context.Context) Result {
	table, err := c.provider.Load(ctx)
	if err != nil {
		return Unhealthy("fonts failed to load", err)
	}
	names := make([]string, 0, len(table))
	for _, f := range table {
		names = append(names, f.Name)
	}
	return Healthy(fmt.Sprintf("%d font faces", len(table))).
		WithDetails(map[string]any{"faces": names})
}

// BreakerChecker reports the state of a circuit breaker. An open breaker
// degrades the service rather than failing it: the guarded work is skipped,
// not the request.
type BreakerChecker struct {
	name    string
	breaker *resilience.CircuitBreaker
}

// NewBreakerChecker creates a checker for breaker under name.
func NewBreakerChecker(name string, breaker *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{name: name, breaker: breaker}
}

// Name returns the checker's name.
func (c *BreakerChecker) Name() string { return c.name }

// Check reads the breaker state.
func (c *BreakerChecker) Check(_ context.Context) Result {
	m := c.breaker.Metrics()
	details := map[string]any{
		"state":    m.State.String(),
		"failures": m.Failures,
	}
	if !m.LastFailure.IsZero() {
		details["last_failure"] = m.LastFailure
	}
	if m.State == resilience.StateClosed {
		return Healthy("circuit closed").WithDetails(details)
	}
	return Degraded("circuit " + m.State.String()).WithDetails(details)
}

// Ensure checkers implement Checker
var (
	_ Checker = (*CacheChecker)(nil)
	_ Checker = (*FontsChecker)(nil)
	_ Checker = (*BreakerChecker)(nil)
)
