package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
)

// Keyer generates deterministic cache keys from a template name and its parameters.
//
// Contract:
// - Determinism: same inputs must produce same key, regardless of map iteration order.
// - Concurrency: implementations must be safe for concurrent use.
// - Shape: keys must satisfy ValidateKey.
type Keyer interface {
	// Key generates a cache key for a render request.
	Key(template string, params map[string]string) string
}

// DefaultKeyer generates SHA-256 based cache keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a new default keyer.
func NewDefaultKeyer() *DefaultKeyer {
	return &DefaultKeyer{}
}

// Key implements Keyer using GenerateKey.
func (k *DefaultKeyer) Key(template string, params map[string]string) string {
	return GenerateKey(template, params)
}

// GenerateKey derives the cache key for a render request.
//
// The hash input is "<template>:" followed by the parameters as "name=value"
// pairs, sorted by name and joined with "&". Names and values are not
// escaped. The key is the first 16 hex characters of the SHA-256 digest.
func GenerateKey(template string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString(template)
	b.WriteByte(':')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(params[name])
	}

	hash := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(hash[:KeyLength/2])
}

// Ensure DefaultKeyer implements Keyer
var _ Keyer = (*DefaultKeyer)(nil)
