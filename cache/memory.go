package cache

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store implementation.
// Entries live until Clear; there is no eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
	size    int64
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]byte),
	}
}

// Get retrieves a copy of the stored bytes. Returns (nil, false) on miss.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	s.mu.RLock()
	data, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Put stores a copy of data under key.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	stored := append([]byte(nil), data...)

	s.mu.Lock()
	s.size -= int64(len(s.entries[key]))
	s.entries[key] = stored
	s.size += int64(len(stored))
	s.mu.Unlock()

	return nil
}

// Stats reports the number of entries and their combined size.
func (s *MemoryStore) Stats(_ context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{Entries: len(s.entries), TotalBytes: s.size}
}

// Clear removes every entry.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.entries = make(map[string][]byte)
	s.size = 0
	s.mu.Unlock()
	return nil
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
