package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func header(kv ...string) http.Header {
	h := http.Header{}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}

func TestHashAPIKey(t *testing.T) {
	// sha256("test")
	const want = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"
	if got := HashAPIKey("test"); got != want {
		t.Errorf("HashAPIKey() = %s", got)
	}
}

func TestAPIKeyAuthenticator(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryAPIKeyStore()
	store.AddPlain("ops", "good-key", "ops-team", "admin")
	store.Add(&APIKey{
		ID:        "old",
		Hash:      HashAPIKey("old-key"),
		Principal: "retired",
		ExpiresAt: now.Add(-time.Hour),
	})
	a := NewAPIKeyAuthenticator(APIKeyConfig{now: func() time.Time { return now }}, store)

	tests := []struct {
		name    string
		header  http.Header
		wantErr error
	}{
		{"valid", header("X-API-Key", "good-key"), nil},
		{"valid with spaces", header("X-API-Key", "  good-key "), nil},
		{"unknown", header("X-API-Key", "nope"), ErrInvalidCredentials},
		{"expired", header("X-API-Key", "old-key"), ErrTokenExpired},
		{"missing", header(), ErrMissingCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.Authenticate(context.Background(), tt.header)
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if tt.wantErr != nil {
				if res.OK() || !errors.Is(res.Err, tt.wantErr) {
					t.Errorf("result = %+v, want failure %v", res, tt.wantErr)
				}
				return
			}
			if !res.OK() {
				t.Fatalf("result = %+v, want success", res.Err)
			}
			id := res.Identity
			if id.Principal != "ops-team" || id.Method != MethodAPIKey || !id.HasRole("admin") {
				t.Errorf("identity = %+v", id)
			}
			if id.Claims["key_id"] != "ops" {
				t.Errorf("key_id claim = %v", id.Claims["key_id"])
			}
		})
	}
}

func TestAPIKeyAuthenticator_CustomHeader(t *testing.T) {
	store := NewMemoryAPIKeyStore()
	store.AddPlain("k", "secret", "me")
	a := NewAPIKeyAuthenticator(APIKeyConfig{Header: "X-Admin-Token"}, store)

	if a.Supports(header("X-API-Key", "secret")) {
		t.Error("default header should not be supported")
	}
	if !a.Supports(header("X-Admin-Token", "secret")) {
		t.Error("custom header should be supported")
	}
}

type failingStore struct{ err error }

func (f failingStore) Lookup(context.Context, string) (*APIKey, error) { return nil, f.err }

func TestAPIKeyAuthenticator_StoreError(t *testing.T) {
	boom := errors.New("store down")
	a := NewAPIKeyAuthenticator(APIKeyConfig{}, failingStore{boom})
	if _, err := a.Authenticate(context.Background(), header("X-API-Key", "k")); !errors.Is(err, boom) {
		t.Errorf("Authenticate() error = %v, want %v", err, boom)
	}
}

func TestMemoryAPIKeyStore(t *testing.T) {
	s := NewMemoryAPIKeyStore()
	s.AddPlain("a", "one", "alice")
	s.AddPlain("b", "two", "bob")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d", s.Len())
	}
	s.Remove(HashAPIKey("one"))
	if got, _ := s.Lookup(context.Background(), HashAPIKey("one")); got != nil {
		t.Errorf("removed key still found: %+v", got)
	}
	if got, _ := s.Lookup(context.Background(), HashAPIKey("two")); got == nil || got.Principal != "bob" {
		t.Errorf("Lookup(two) = %+v", got)
	}
}
