package auth

import (
	"context"
	"net/http"
)

// CompositeAuthenticator tries authenticators in order and returns the
// first success. When none succeeds it returns the failure of the last
// authenticator that recognised a credential.
type CompositeAuthenticator struct {
	authenticators []Authenticator
}

// NewCompositeAuthenticator combines auths. Nil entries are skipped.
func NewCompositeAuthenticator(auths ...Authenticator) *CompositeAuthenticator {
	c := &CompositeAuthenticator{}
	for _, a := range auths {
		if a != nil {
			c.authenticators = append(c.authenticators, a)
		}
	}
	return c
}

// Name returns "composite".
func (c *CompositeAuthenticator) Name() string { return "composite" }

// Len returns the number of combined authenticators.
func (c *CompositeAuthenticator) Len() int { return len(c.authenticators) }

// Supports reports whether any authenticator recognises a credential.
func (c *CompositeAuthenticator) Supports(header http.Header) bool {
	for _, a := range c.authenticators {
		if a.Supports(header) {
			return true
		}
	}
	return false
}

// Authenticate tries each authenticator that supports header.
func (c *CompositeAuthenticator) Authenticate(ctx context.Context, header http.Header) (Result, error) {
	last := Failure(ErrMissingCredentials)
	for _, a := range c.authenticators {
		if !a.Supports(header) {
			continue
		}
		res, err := a.Authenticate(ctx, header)
		if err != nil {
			return Result{}, err
		}
		if res.OK() {
			return res, nil
		}
		last = res
	}
	return last, nil
}

// Ensure CompositeAuthenticator implements Authenticator
var _ Authenticator = (*CompositeAuthenticator)(nil)
