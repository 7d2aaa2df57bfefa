package auth

import (
	"context"
	"net/http"
)

// Authenticator validates one kind of credential.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Authenticate must honor cancellation.
// - Errors: a rejected credential is reported as a failed Result with a nil
// error. A non-nil error means the check itself could not run.
type Authenticator interface {
	// Name identifies the authenticator in logs.
	Name() string

	// Supports reports whether header carries this authenticator's
	// credential at all.
	Supports(header http.Header) bool

	// Authenticate validates the credential in header.
	Authenticate(ctx context.Context, header http.Header) (Result, error)
}

// Result is the outcome of an authentication attempt.
type Result struct {
	// Identity is set on success.
	Identity *Identity

	// Err explains a failure. It wraps one of the package sentinels.
	Err error
}

// OK reports whether authentication succeeded.
func (r Result) OK() bool {
	return r.Identity != nil && r.Err == nil
}

// Success creates a successful result.
func Success(id *Identity) Result {
	return Result{Identity: id}
}

// Failure creates a failed result.
func Failure(err error) Result {
	return Result{Err: err}
}
