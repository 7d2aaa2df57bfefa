package resilience

import (
	"context"
	"sync"
	"time"
)

// RateLimiterConfig configures the rate limiter.
type RateLimiterConfig struct {
	// Rate is the number of operations allowed per second.
	// Default: 10
	Rate float64

	// Burst is the maximum burst size.
	// Default: 20
	Burst int

	// WaitOnLimit makes Execute wait for a token instead of failing.
	WaitOnLimit bool

	// MaxWait caps a single wait for tokens.
	// Default: 1s
	MaxWait time.Duration

	now func() time.Time
}

func (c RateLimiterConfig) withDefaults() RateLimiterConfig {
	if c.Rate <= 0 {
		c.Rate = 10
	}
	if c.Burst <= 0 {
		c.Burst = 20
	}
	if c.MaxWait <= 0 {
		c.MaxWait = time.Second
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// RateLimiter is a token bucket.
type RateLimiter struct {
	config RateLimiterConfig

	mu          sync.Mutex
	tokens      float64
	lastRefresh time.Time
}

// NewRateLimiter creates a new rate limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	config = config.withDefaults()
	return &RateLimiter{
		config:      config,
		tokens:      float64(config.Burst),
		lastRefresh: config.now(),
	}
}

// Allow takes one token if available.
func (rl *RateLimiter) Allow() bool {
	return rl.AllowN(1)
}

// AllowN takes n tokens if available.
func (rl *RateLimiter) AllowN(n int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	if rl.tokens >= float64(n) {
		rl.tokens -= float64(n)
		return true
	}
	return false
}

// Wait blocks until a token is available, MaxWait passes, or ctx ends.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	return rl.WaitN(ctx, 1)
}

// WaitN blocks until n tokens are available.
func (rl *RateLimiter) WaitN(ctx context.Context, n int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rl.AllowN(n) {
		return nil
	}

	rl.mu.Lock()
	need := float64(n) - rl.tokens
	rl.mu.Unlock()

	wait := min(time.Duration(need/rl.config.Rate*float64(time.Second)), rl.config.MaxWait)
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		if rl.AllowN(n) {
			return nil
		}
		return ErrRateLimitExceeded
	}
}

// Execute runs op if the limiter admits it.
func (rl *RateLimiter) Execute(ctx context.Context, op func(context.Context) error) error {
	if rl.config.WaitOnLimit {
		if err := rl.Wait(ctx); err != nil {
			return err
		}
	} else if !rl.Allow() {
		return ErrRateLimitExceeded
	}
	return op(ctx)
}

func (rl *RateLimiter) refillLocked() {
	now := rl.config.now()
	elapsed := now.Sub(rl.lastRefresh)
	rl.lastRefresh = now

	rl.tokens = min(rl.tokens+elapsed.Seconds()*rl.config.Rate, float64(rl.config.Burst))
}

// Tokens returns the current number of available tokens.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()
	return rl.tokens
}

// Reset refills the bucket.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.tokens = float64(rl.config.Burst)
	rl.lastRefresh = rl.config.now()
}

// idleSince reports whether the bucket has not been touched since cutoff.
func (rl *RateLimiter) idleSince(cutoff time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return rl.lastRefresh.Before(cutoff)
}

// KeyedLimiterConfig configures a KeyedLimiter.
type KeyedLimiterConfig struct {
	// Limit is the per-key bucket configuration.
	Limit RateLimiterConfig

	// MaxKeys bounds the number of tracked keys. When full, idle buckets
	// are dropped; if none are idle the oldest key is dropped.
	// Default: 10000
	MaxKeys int

	// IdleAfter is how long a bucket must sit unused before it can be
	// dropped.
	// Default: 1m
	IdleAfter time.Duration
}

// KeyedLimiter keeps one token bucket per key, such as a client address.
type KeyedLimiter struct {
	config KeyedLimiterConfig

	mu      sync.Mutex
	buckets map[string]*RateLimiter
	order   []string
}

// NewKeyedLimiter creates an empty keyed limiter.
func NewKeyedLimiter(config KeyedLimiterConfig) *KeyedLimiter {
	// Apply defaults
	config.Limit = config.Limit.withDefaults()
	if config.MaxKeys <= 0 {
		config.MaxKeys = 10000
	}
	if config.IdleAfter <= 0 {
		config.IdleAfter = time.Minute
	}

	return &KeyedLimiter{
		config:  config,
		buckets: make(map[string]*RateLimiter),
	}
}

// Allow takes one token from key's bucket.
func (k *KeyedLimiter) Allow(key string) bool {
	return k.bucket(key).Allow()
}

// Len returns the number of tracked keys.
func (k *KeyedLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *KeyedLimiter) bucket(key string) *RateLimiter {
	k.mu.Lock()
	defer k.mu.Unlock()

	if rl, ok := k.buckets[key]; ok {
		return rl
	}
	if len(k.buckets) >= k.config.MaxKeys {
		k.evictLocked()
	}
	rl := NewRateLimiter(k.config.Limit)
	k.buckets[key] = rl
	k.order = append(k.order, key)
	return rl
}

func (k *KeyedLimiter) evictLocked() {
	cutoff := k.config.Limit.now().Add(-k.config.IdleAfter)
	kept := k.order[:0]
	for _, key := range k.order {
		if k.buckets[key].idleSince(cutoff) {
			delete(k.buckets, key)
			continue
		}
		kept = append(kept, key)
	}
	k.order = kept

	if len(k.buckets) >= k.config.MaxKeys && len(k.order) > 0 {
		delete(k.buckets, k.order[0])
		k.order = k.order[1:]
	}
}
