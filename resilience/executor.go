package resilience

import "context"

// Policy guards an operation. CircuitBreaker, Retry, RateLimiter and
// Bulkhead are policies.
type Policy interface {
	Execute(ctx context.Context, op func(context.Context) error) error
}

// Layers, outermost first.
const (
	layerRateLimit = iota
	layerBulkhead
	layerBreaker
	layerRetry
	numLayers
)

// Executor stacks policies around an operation in a fixed order:
// rate limiter, bulkhead, circuit breaker, retry. The breaker therefore
// sees one outcome per Execute, after retries.
type Executor struct {
	layers  [numLayers]Policy
	breaker *CircuitBreaker
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates an executor. With no options it runs op directly.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCircuitBreaker stops calling op while cb is open.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		if cb != nil {
			e.layers[layerBreaker] = cb
			e.breaker = cb
		}
	}
}

// WithRetry re-runs failed attempts with backoff.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		if r != nil {
			e.layers[layerRetry] = r
		}
	}
}

// WithRateLimiter admits calls through a token bucket.
func WithRateLimiter(rl *RateLimiter) ExecutorOption {
	return func(e *Executor) {
		if rl != nil {
			e.layers[layerRateLimit] = rl
		}
	}
}

// WithBulkhead caps concurrent calls.
func WithBulkhead(b *Bulkhead) ExecutorOption {
	return func(e *Executor) {
		if b != nil {
			e.layers[layerBulkhead] = b
		}
	}
}

// Execute runs op inside every configured policy.
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	run := op
	for i := numLayers - 1; i >= 0; i-- {
		p := e.layers[i]
		if p == nil {
			continue
		}
		inner := run
		run = func(ctx context.Context) error { return p.Execute(ctx, inner) }
	}
	return run(ctx)
}

// CircuitBreaker returns the configured breaker, or nil.
func (e *Executor) CircuitBreaker() *CircuitBreaker {
	return e.breaker
}

// Ensure the patterns implement Policy
var (
	_ Policy = (*CircuitBreaker)(nil)
	_ Policy = (*Retry)(nil)
	_ Policy = (*RateLimiter)(nil)
	_ Policy = (*Bulkhead)(nil)
	_ Policy = (*Executor)(nil)
)
