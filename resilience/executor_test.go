package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecutor_NoPatterns(t *testing.T) {
	calls := 0
	err := NewExecutor().Execute(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("Execute() = %v after %d calls", err, calls)
	}
}

func TestExecutor_RetryInsideBreaker(t *testing.T) {
	cb := NewCircuitBreaker(CircuitBreakerConfig{MaxFailures: 2, ResetTimeout: time.Hour})
	exec := NewExecutor(
		WithCircuitBreaker(cb),
		WithRetry(NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})),
	)
	if exec.CircuitBreaker() != cb {
		t.Fatal("CircuitBreaker() did not return the configured breaker")
	}

	calls := 0
	op := func(context.Context) error {
		calls++
		return errDisk
	}
	ctx := context.Background()

	_ = exec.Execute(ctx, op)
	if calls != 3 {
		t.Fatalf("calls after first Execute = %d, want 3", calls)
	}
	if cb.State() != StateClosed {
		t.Fatalf("breaker should count one failure per Execute, state = %v", cb.State())
	}

	_ = exec.Execute(ctx, op)
	if err := exec.Execute(ctx, op); !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("third Execute() error = %v, want ErrCircuitOpen", err)
	}
	if calls != 6 {
		t.Errorf("calls = %d, want 6", calls)
	}
}

func TestExecutor_RateLimiterOutermost(t *testing.T) {
	b := NewBulkhead(BulkheadConfig{MaxConcurrent: 1})
	exec := NewExecutor(
		WithRateLimiter(NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1})),
		WithBulkhead(b),
	)
	ctx := context.Background()

	if err := exec.Execute(ctx, succeed); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if err := exec.Execute(ctx, succeed); !errors.Is(err, ErrRateLimitExceeded) {
		t.Errorf("second Execute() error = %v, want ErrRateLimitExceeded", err)
	}
	if b.Metrics().MaxActive != 1 {
		t.Errorf("bulkhead saw %d concurrent, want 1", b.Metrics().MaxActive)
	}
}

func TestExecutor_NilOptionsAreIgnored(t *testing.T) {
	exec := NewExecutor(WithCircuitBreaker(nil), WithRetry(nil), WithRateLimiter(nil), WithBulkhead(nil))
	if exec.CircuitBreaker() != nil {
		t.Error("CircuitBreaker() should be nil")
	}
	if err := exec.Execute(context.Background(), fail); !errors.Is(err, errDisk) {
		t.Errorf("Execute() error = %v, want errDisk", err)
	}
}
