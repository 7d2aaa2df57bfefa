package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

var errDisk = errors.New("disk full")

func TestRetry_SucceedsAfterFailures(t *testing.T) {
	r := NewRetry(RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond})
	calls := 0
	err := r.Execute(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errDisk
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_Exhausted(t *testing.T) {
	var retries []int
	r := NewRetry(RetryConfig{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		OnRetry:      func(attempt int, _ error, _ time.Duration) { retries = append(retries, attempt) },
	})
	err := r.Execute(context.Background(), func(context.Context) error { return errDisk })
	if !errors.Is(err, ErrMaxRetriesExceeded) || !errors.Is(err, errDisk) {
		t.Fatalf("Execute() error = %v, want both sentinels", err)
	}
	if len(retries) != 1 || retries[0] != 1 {
		t.Errorf("OnRetry attempts = %v, want [1]", retries)
	}
}

func TestRetry_NotRetryable(t *testing.T) {
	permanent := errors.New("read-only filesystem")
	r := NewRetry(RetryConfig{
		InitialDelay: time.Millisecond,
		RetryIf:      func(err error) bool { return !errors.Is(err, permanent) },
	})
	calls := 0
	err := r.Execute(context.Background(), func(context.Context) error {
		calls++
		return permanent
	})
	if err != permanent {
		t.Errorf("Execute() error = %v, want unwrapped %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	r := NewRetry(RetryConfig{MaxAttempts: 5, InitialDelay: time.Hour})
	err := r.Execute(ctx, func(context.Context) error {
		cancel()
		return errDisk
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestBackoff(t *testing.T) {
	exp := ExponentialBackoff(100*time.Millisecond, time.Second, 2)
	tests := []struct {
		name    string
		backoff Backoff
		retry   int
		want    time.Duration
	}{
		{"exponential first", exp, 1, 100 * time.Millisecond},
		{"exponential third", exp, 3, 400 * time.Millisecond},
		{"exponential capped", exp, 10, time.Second},
		{"constant", ConstantBackoff(75 * time.Millisecond), 7, 75 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.backoff(tt.retry); got != tt.want {
				t.Errorf("backoff(%d) = %v, want %v", tt.retry, got, tt.want)
			}
		})
	}
}

func TestRetry_CustomBackoffReachesOnRetry(t *testing.T) {
	var delays []time.Duration
	r := NewRetry(RetryConfig{
		MaxAttempts: 3,
		Backoff:     ConstantBackoff(time.Millisecond),
		OnRetry:     func(_ int, _ error, d time.Duration) { delays = append(delays, d) },
	})
	_ = r.Execute(context.Background(), func(context.Context) error { return errDisk })
	if len(delays) != 2 || delays[0] != time.Millisecond || delays[1] != time.Millisecond {
		t.Errorf("delays = %v, want two 1ms pauses", delays)
	}
}

func TestRetry_JitterBounded(t *testing.T) {
	r := NewRetry(RetryConfig{InitialDelay: 100 * time.Millisecond, Jitter: true})
	for range 50 {
		d := r.delay(1)
		if d < 100*time.Millisecond || d >= 125*time.Millisecond {
			t.Fatalf("delay() = %v, want [100ms, 125ms)", d)
		}
	}
}

func TestRetry_Defaults(t *testing.T) {
	cfg := NewRetry(RetryConfig{}).Config()
	if cfg.MaxAttempts != 3 || cfg.InitialDelay != 50*time.Millisecond || cfg.MaxDelay != 2*time.Second {
		t.Errorf("defaults = %+v", cfg)
	}
	if got := cfg.Backoff(2); got != 100*time.Millisecond {
		t.Errorf("default Backoff(2) = %v, want 100ms", got)
	}
}
