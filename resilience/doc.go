// Package resilience guards the side paths of image rendering.
//
// Retry and CircuitBreaker protect background cache writes: a failing disk is
// retried a few times, then left alone for a while instead of being hammered
// by every render. Bulkhead caps how many rasterizations run at once.
// RateLimiter and KeyedLimiter throttle render requests per client. Executor
// composes any of them around one operation:
//
//	exec := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{})),
//	    resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{})),
//	)
//	err := exec.Execute(ctx, func(ctx context.Context) error {
//	    return store.Put(ctx, key, png)
//	})
package resilience
