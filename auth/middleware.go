package auth

import (
	"encoding/json"
	"errors"
	"net/http"
)

// MiddlewareConfig configures Middleware.
type MiddlewareConfig struct {
	// Role, when set, must be held by the caller.
	Role string

	// OnDenied is called for every rejected request, after the response
	// is written. Use it for logging.
	OnDenied func(r *http.Request, err error)
}

// Middleware rejects requests that authn does not authenticate. Accepted
// requests carry their Identity in the request context.
//
// Missing or bad credentials answer 401 and a caller without the required
// role answers 403, both with a JSON {"error": ...} body. An authenticator
// that cannot run answers 500.
func Middleware(authn Authenticator, config MiddlewareConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := authn.Authenticate(r.Context(), r.Header)
			switch {
			case err != nil:
				deny(w, r, config, http.StatusInternalServerError, err)
				return
			case !res.OK():
				if res.Err == nil {
					res.Err = ErrInvalidCredentials
				}
				w.Header().Set("WWW-Authenticate", `Bearer realm="ogx"`)
				deny(w, r, config, http.StatusUnauthorized, res.Err)
				return
			case config.Role != "" && !res.Identity.HasRole(config.Role):
				deny(w, r, config, http.StatusForbidden, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), res.Identity)))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request, config MiddlewareConfig, code int, err error) {
	msg := http.StatusText(code)
	if code != http.StatusInternalServerError {
		msg = publicMessage(err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	if config.OnDenied != nil {
		config.OnDenied(r, err)
	}
}

// publicMessage names the failure without echoing parser internals.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		ErrMissingCredentials, ErrTokenExpired, ErrTokenMalformed, ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ErrInvalidCredentials.Error()
}
