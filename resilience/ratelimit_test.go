package resilience

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter_BurstThenRefill(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	rl := NewRateLimiter(RateLimiterConfig{Rate: 2, Burst: 3, now: clock.now})

	for i := range 3 {
		if !rl.Allow() {
			t.Fatalf("Allow() #%d = false within burst", i+1)
		}
	}
	if rl.Allow() {
		t.Fatal("Allow() past burst = true")
	}

	clock.advance(500 * time.Millisecond)
	if !rl.Allow() {
		t.Error("Allow() after refill = false")
	}
	if rl.Allow() {
		t.Error("only one token should have refilled")
	}

	clock.advance(time.Hour)
	if got := rl.Tokens(); got != 3 {
		t.Errorf("Tokens() = %v, want capped at 3", got)
	}
}

func TestRateLimiter_AllowN(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 5, now: clock.now})
	if rl.AllowN(6) {
		t.Error("AllowN(6) with burst 5 = true")
	}
	if !rl.AllowN(5) {
		t.Error("AllowN(5) = false")
	}
	rl.Reset()
	if got := rl.Tokens(); got != 5 {
		t.Errorf("Tokens() after Reset = %v", got)
	}
}

func TestRateLimiter_Execute(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1, Burst: 1, now: clock.now})
	ctx := context.Background()

	if err := rl.Execute(ctx, succeed); err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	called := false
	err := rl.Execute(ctx, func(context.Context) error { called = true; return nil })
	if !errors.Is(err, ErrRateLimitExceeded) || called {
		t.Errorf("limited Execute(): err = %v, called = %v", err, called)
	}
}

func TestRateLimiter_WaitHonorsContext(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1, MaxWait: time.Hour})
	rl.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestRateLimiter_WaitGivesUpAfterMaxWait(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 0.001, Burst: 1, MaxWait: 5 * time.Millisecond})
	rl.Allow()
	if err := rl.Wait(context.Background()); !errors.Is(err, ErrRateLimitExceeded) {
		t.Errorf("Wait() error = %v, want ErrRateLimitExceeded", err)
	}
}

func TestRateLimiter_WaitSucceeds(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: 1000, Burst: 1, WaitOnLimit: true})
	ctx := context.Background()
	for range 3 {
		if err := rl.Execute(ctx, succeed); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
	}
}

func TestKeyedLimiter_IndependentBuckets(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	k := NewKeyedLimiter(KeyedLimiterConfig{Limit: RateLimiterConfig{Rate: 1, Burst: 1, now: clock.now}})

	if !k.Allow("10.0.0.1") {
		t.Fatal("first request from a client was limited")
	}
	if k.Allow("10.0.0.1") {
		t.Error("second request from the same client was allowed")
	}
	if !k.Allow("10.0.0.2") {
		t.Error("another client shared the first client's bucket")
	}
	if k.Len() != 2 {
		t.Errorf("Len() = %d, want 2", k.Len())
	}
}

func TestKeyedLimiter_EvictsIdleKeys(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	k := NewKeyedLimiter(KeyedLimiterConfig{
		Limit:     RateLimiterConfig{Rate: 1, Burst: 1, now: clock.now},
		MaxKeys:   2,
		IdleAfter: time.Minute,
	})

	k.Allow("a")
	k.Allow("b")
	clock.advance(2 * time.Minute)
	k.Allow("b")
	k.Allow("c")

	if k.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", k.Len())
	}
	if k.Allow("b") {
		t.Error("active key lost its bucket state")
	}
}

func TestKeyedLimiter_EvictsOldestWhenNoneIdle(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	k := NewKeyedLimiter(KeyedLimiterConfig{
		Limit:   RateLimiterConfig{Rate: 1, Burst: 1, now: clock.now},
		MaxKeys: 3,
	})
	for i := range 10 {
		k.Allow(fmt.Sprintf("client-%d", i))
	}
	if k.Len() != 3 {
		t.Errorf("Len() = %d, want 3", k.Len())
	}
	if !k.Allow("client-0") {
		t.Error("evicted key should start with a fresh bucket")
	}
}
