package resilience

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

// Backoff maps a 1-based retry number to the pause before that retry.
type Backoff func(retry int) time.Duration

// ExponentialBackoff starts at initial and multiplies by factor on each
// retry, never exceeding ceiling.
func ExponentialBackoff(initial, ceiling time.Duration, factor float64) Backoff {
	return func(retry int) time.Duration {
		d := float64(initial)
		for range retry - 1 {
			d *= factor
			if d >= float64(ceiling) {
				return ceiling
			}
		}
		return min(time.Duration(d), ceiling)
	}
}

// ConstantBackoff pauses for d before every retry.
func ConstantBackoff(d time.Duration) Backoff {
	return func(int) time.Duration { return d }
}

// RetryConfig configures Retry.
type RetryConfig struct {
	// MaxAttempts counts the first call as well as the retries.
	// Default: 3
	MaxAttempts int

	// InitialDelay seeds the default exponential backoff.
	// Default: 50ms
	InitialDelay time.Duration

	// MaxDelay caps the default exponential backoff.
	// Default: 2s
	MaxDelay time.Duration

	// Backoff overrides the default exponential schedule when set.
	Backoff Backoff

	// Jitter stretches each pause by up to a quarter.
	Jitter bool

	// RetryIf reports whether err is transient.
	// Default: every non-nil error.
	RetryIf func(err error) bool

	// OnRetry observes each failed attempt that will be retried.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// Retry re-runs an operation that fails transiently, pausing between
// attempts.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a Retry.
func NewRetry(config RetryConfig) *Retry {
	// Apply defaults
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 50 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 2 * time.Second
	}
	if config.Backoff == nil {
		config.Backoff = ExponentialBackoff(config.InitialDelay, config.MaxDelay, 2)
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}
	return &Retry{config: config}
}

// Execute calls op until it succeeds, fails permanently, or the attempt
// budget is spent. A permanent error is returned as is. Exhaustion wraps
// ErrMaxRetriesExceeded together with the last failure.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	attempt := 0
	for {
		attempt++
		err := op(ctx)
		switch {
		case err == nil:
			return nil
		case !r.config.RetryIf(err):
			return err
		case attempt >= r.config.MaxAttempts:
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempt, err)
		}

		pause := r.delay(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, pause)
		}
		if err := sleep(ctx, pause); err != nil {
			return err
		}
	}
}

func (r *Retry) delay(retry int) time.Duration {
	d := r.config.Backoff(retry)
	if r.config.Jitter && d >= 4 {
		// #nosec G404 -- timing variance only.
		d += time.Duration(rand.Int64N(int64(d / 4)))
	}
	return d
}

// sleep waits for d or until ctx ends, whichever is first.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Config returns the effective configuration.
func (r *Retry) Config() RetryConfig {
	return r.config
}
