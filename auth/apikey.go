package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultAPIKeyHeader carries API keys.
const DefaultAPIKeyHeader = "X-API-Key"

// APIKey describes one issued key. Only the hash of the key is kept.
type APIKey struct {
	// ID names the key in logs without revealing it.
	ID string

	// Hash is HashAPIKey of the key.
	Hash string

	Principal string
	Roles     []string

	// ExpiresAt is zero for keys that never expire.
	ExpiresAt time.Time

	Metadata map[string]any
}

// APIKeyStore looks up keys by hash.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: an unknown hash is (nil, nil); errors mean the lookup failed.
type APIKeyStore interface {
	Lookup(ctx context.Context, hash string) (*APIKey, error)
}

// HashAPIKey returns the hex SHA-256 of key, the form keys are stored in.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// APIKeyConfig configures an APIKeyAuthenticator.
type APIKeyConfig struct {
	// Header carries the key.
	// Default: "X-API-Key"
	Header string

	now func() time.Time
}

// APIKeyAuthenticator validates keys presented in a request header.
type APIKeyAuthenticator struct {
	config APIKeyConfig
	store  APIKeyStore
}

// NewAPIKeyAuthenticator creates an API key authenticator over store.
func NewAPIKeyAuthenticator(config APIKeyConfig, store APIKeyStore) *APIKeyAuthenticator {
	// Apply defaults
	if config.Header == "" {
		config.Header = DefaultAPIKeyHeader
	}
	if config.now == nil {
		config.now = time.Now
	}
	return &APIKeyAuthenticator{config: config, store: store}
}

// Name returns "api_key".
func (a *APIKeyAuthenticator) Name() string { return string(MethodAPIKey) }

// Supports reports whether the key header is present.
func (a *APIKeyAuthenticator) Supports(header http.Header) bool {
	return strings.TrimSpace(header.Get(a.config.Header)) != ""
}

// Authenticate hashes the presented key and looks it up.
func (a *APIKeyAuthenticator) Authenticate(ctx context.Context, header http.Header) (Result, error) {
	key := strings.TrimSpace(header.Get(a.config.Header))
	if key == "" {
		return Failure(ErrMissingCredentials), nil
	}

	info, err := a.store.Lookup(ctx, HashAPIKey(key))
	if err != nil {
		return Result{}, err
	}
	if info == nil {
		return Failure(ErrInvalidCredentials), nil
	}

	id := &Identity{
		Principal: info.Principal,
		Roles:     info.Roles,
		Method:    MethodAPIKey,
		Claims:    map[string]any{"key_id": info.ID},
		ExpiresAt: info.ExpiresAt,
	}
	maps.Copy(id.Claims, info.Metadata)
	if id.Expired(a.config.now()) {
		return Failure(ErrTokenExpired), nil
	}
	return Success(id), nil
}

// MemoryAPIKeyStore holds keys in memory.
type MemoryAPIKeyStore struct {
	mu   sync.RWMutex
	keys map[string]*APIKey
}

// NewMemoryAPIKeyStore creates an empty store.
func NewMemoryAPIKeyStore() *MemoryAPIKeyStore {
	return &MemoryAPIKeyStore{keys: make(map[string]*APIKey)}
}

// Lookup returns the key with hash, or nil.
func (s *MemoryAPIKeyStore) Lookup(_ context.Context, hash string) (*APIKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys[hash], nil
}

// Add stores key, replacing any key with the same hash.
func (s *MemoryAPIKeyStore) Add(key *APIKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key.Hash] = key
}

// AddPlain hashes plaintext and stores it under id.
func (s *MemoryAPIKeyStore) AddPlain(id, plaintext, principal string, roles ...string) {
	s.Add(&APIKey{ID: id, Hash: HashAPIKey(plaintext), Principal: principal, Roles: roles})
}

// Remove deletes the key with hash.
func (s *MemoryAPIKeyStore) Remove(hash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keys, hash)
}

// Len returns the number of stored keys.
func (s *MemoryAPIKeyStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}

// Ensure APIKeyAuthenticator implements Authenticator
var _ Authenticator = (*APIKeyAuthenticator)(nil)

// Ensure MemoryAPIKeyStore implements APIKeyStore
var _ APIKeyStore = (*MemoryAPIKeyStore)(nil)
