// Package lazy provides a shared, initialize-once value.
//
// A Value runs its initializer the first time it is needed. Concurrent first
// callers share a single in-flight initialization instead of racing. A
// successful result is memoized until Reset; a failed initialization is not,
// so the next caller tries again.
package lazy

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// InitFunc produces the value. It receives a context that carries the first
// caller's values but not its cancellation.
type InitFunc[T any] func(ctx context.Context) (T, error)

// Value is a lazily initialized value of type T.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: Get returns ctx.Err() if ctx ends before initialization completes;
// the initialization itself keeps running.
// - Errors: initialization errors are returned to every waiting caller and are not cached.
type Value[T any] struct {
	init InitFunc[T]

	mu    sync.RWMutex
	value T
	ready bool
	gen   uint64

	group singleflight.Group
}

// New creates a Value backed by init.
func New[T any](init InitFunc[T]) *Value[T] {
	return &Value[T]{init: init}
}

// Get returns the value, initializing it if needed.
func (v *Value[T]) Get(ctx context.Context) (T, error) {
	v.mu.RLock()
	if v.ready {
		val := v.value
		v.mu.RUnlock()
		return val, nil
	}
	gen := v.gen
	v.mu.RUnlock()

	detached := context.WithoutCancel(ctx)
	ch := v.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		val, err := v.init(detached)
		if err != nil {
			return val, err
		}
		v.mu.Lock()
		// A Reset during initialization discards this result.
		if v.gen == gen {
			v.value = val
			v.ready = true
		}
		v.mu.Unlock()
		return val, nil
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		val, _ := res.Val.(T)
		return val, res.Err
	}
}

// Ready reports whether a value is currently memoized.
func (v *Value[T]) Ready() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ready
}

// Reset forgets the memoized value. The next Get initializes again.
func (v *Value[T]) Reset() {
	v.mu.Lock()
	var zero T
	v.value = zero
	v.ready = false
	v.gen++
	v.mu.Unlock()
}
