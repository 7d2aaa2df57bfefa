package auth

import (
	"slices"
	"time"
)

// Method names the credential an identity authenticated with.
type Method string

// Authentication methods.
const (
	MethodAPIKey    Method = "api_key"
	MethodJWT       Method = "jwt"
	MethodAnonymous Method = "anonymous"
)

// Identity is an authenticated caller.
type Identity struct {
	// Principal identifies the caller: a key owner or the token subject.
	Principal string

	Roles  []string
	Method Method

	// Claims holds token claims, or key metadata for API keys.
	Claims map[string]any

	// ExpiresAt is zero for credentials that never expire.
	ExpiresAt time.Time
}

// HasRole reports whether the identity holds role.
func (id *Identity) HasRole(role string) bool {
	return slices.Contains(id.Roles, role)
}

// Expired reports whether the identity's credential has expired at now.
func (id *Identity) Expired(now time.Time) bool {
	return !id.ExpiresAt.IsZero() && now.After(id.ExpiresAt)
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() *Identity {
	return &Identity{Principal: "anonymous", Method: MethodAnonymous}
}
