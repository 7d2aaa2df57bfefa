package cache

import (
	"context"
	"errors"
)

// KeyLength is the length of every key produced by GenerateKey.
const KeyLength = 16

// Sentinel errors for cache operations.
var (
	ErrNilStore   = errors.New("cache: store is nil")
	ErrInvalidKey = errors.New("cache: key is invalid")
)

// Stats summarizes the contents of a Store.
type Stats struct {
	// Entries is the number of stored images.
	Entries int `json:"files"`

	// TotalBytes is the combined size of all stored images.
	TotalBytes int64 `json:"totalSize"`
}

// Store is the interface for rendered image storage.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use. Concurrent
// Puts of the same key carry identical bytes, so last writer wins.
// - Context: methods should honor cancellation where applicable.
// - Errors: Get never errors; any failure is reported as a miss. Stats
// returns zero Stats on failure. Clear is idempotent.
type Store interface {
	// Get returns the stored bytes for key, or (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Put stores data under key, replacing any previous entry.
	Put(ctx context.Context, key string, data []byte) error

	// Stats reports the number and total size of stored entries.
	Stats(ctx context.Context) Stats

	// Clear removes every entry.
	Clear(ctx context.Context) error
}

// ValidateKey checks that key has the shape produced by GenerateKey:
// exactly KeyLength lowercase hex characters. Anything else could escape
// the storage namespace and is rejected.
func ValidateKey(key string) error {
	if len(key) != KeyLength {
		return ErrInvalidKey
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return ErrInvalidKey
		}
	}
	return nil
}
