package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func protected(t *testing.T, config MiddlewareConfig) (http.Handler, *[]error) {
	t.Helper()
	store := NewMemoryAPIKeyStore()
	store.AddPlain("admin", "admin-key", "root", "admin")
	store.AddPlain("viewer", "viewer-key", "guest", "viewer")
	authn := NewCompositeAuthenticator(
		NewAPIKeyAuthenticator(APIKeyConfig{}, store),
		NewJWTAuthenticator(JWTConfig{Secret: testSecret}),
	)

	var denied []error
	config.OnDenied = func(_ *http.Request, err error) { denied = append(denied, err) }
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(PrincipalFromContext(r.Context())))
	})
	return Middleware(authn, config)(next), &denied
}

func TestMiddleware(t *testing.T) {
	h, denied := protected(t, MiddlewareConfig{Role: "admin"})

	tests := []struct {
		name     string
		header   http.Header
		wantCode int
		wantBody string
	}{
		{"admin key", header("X-API-Key", "admin-key"), http.StatusOK, "root"},
		{"viewer key", header("X-API-Key", "viewer-key"), http.StatusForbidden, ""},
		{"bad key", header("X-API-Key", "nope"), http.StatusUnauthorized, ""},
		{"no credentials", header(), http.StatusUnauthorized, ""},
		{"malformed token", header("Authorization", "Bearer x"), http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/cache", nil)
			req.Header = tt.header
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantCode == http.StatusOK {
				if rec.Body.String() != tt.wantBody {
					t.Errorf("body = %q, want %q", rec.Body.String(), tt.wantBody)
				}
				return
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["error"] == "" {
				t.Error("error body missing message")
			}
			if tt.wantCode == http.StatusUnauthorized && rec.Header().Get("WWW-Authenticate") == "" {
				t.Error("401 without WWW-Authenticate")
			}
		})
	}
	if len(*denied) != 4 {
		t.Errorf("OnDenied called %d times, want 4", len(*denied))
	}
}

func TestMiddleware_NoRole(t *testing.T) {
	h, _ := protected(t, MiddlewareConfig{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "viewer-key")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "guest" {
		t.Errorf("GET = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMiddleware_AuthenticatorError(t *testing.T) {
	boom := errors.New("store down")
	authn := NewAPIKeyAuthenticator(APIKeyConfig{}, failingStore{boom})
	var got error
	h := Middleware(authn, MiddlewareConfig{OnDenied: func(_ *http.Request, err error) { got = err }})(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { t.Error("handler reached") }))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-API-Key", "k")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("code = %d, want 500", rec.Code)
	}
	if !errors.Is(got, boom) {
		t.Errorf("OnDenied err = %v", got)
	}
}

func TestPublicMessage(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{ErrTokenExpired, ErrTokenExpired},
		{errors.Join(ErrInvalidCredentials, errors.New("signature is invalid")), ErrInvalidCredentials},
		{errors.New("anything else"), ErrInvalidCredentials},
		{ErrMissingCredentials, ErrMissingCredentials},
	}
	for _, tt := range tests {
		if got := publicMessage(tt.err); got != tt.want.Error() {
			t.Errorf("publicMessage(%v) = %q, want %q", tt.err, got, tt.want.Error())
		}
	}
}

func TestContext(t *testing.T) {
	ctx := context.Background()
	if IdentityFromContext(ctx) != nil || PrincipalFromContext(ctx) != "" {
		t.Error("empty context should carry no identity")
	}
	ctx = WithIdentity(ctx, &Identity{Principal: "alice"})
	if PrincipalFromContext(ctx) != "alice" {
		t.Errorf("PrincipalFromContext() = %q", PrincipalFromContext(ctx))
	}
	if a := Anonymous(); a.Method != MethodAnonymous || a.HasRole("admin") {
		t.Errorf("Anonymous() = %+v", a)
	}
}
