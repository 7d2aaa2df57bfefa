package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newRouter(checkers ...Checker) http.Handler {
	agg := NewAggregator(AggregatorConfig{})
	for _, c := range checkers {
		agg.Register(c)
	}
	r := chi.NewRouter()
	Mount(r, agg)
	return r
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	rec := get(t, newRouter(fixed("cache", Unhealthy("down", nil))), "/healthz")
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("GET /healthz = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}
}

func TestReadiness(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		wantCode int
		wantBody string
	}{
		{"healthy", Healthy("ok"), http.StatusOK, "OK"},
		{"degraded", Degraded("slow"), http.StatusOK, "DEGRADED"},
		{"unhealthy", Unhealthy("down", nil), http.StatusServiceUnavailable, "UNHEALTHY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newRouter(fixed("cache", tt.result)), "/readyz")
			if rec.Code != tt.wantCode || rec.Body.String() != tt.wantBody {
				t.Errorf("GET /readyz = %d %q, want %d %q", rec.Code, rec.Body.String(), tt.wantCode, tt.wantBody)
			}
		})
	}
}

func TestDetailed(t *testing.T) {
	h := newRouter(
		fixed("cache", Healthy("3 cached images").WithDetails(map[string]any{"entries": 3})),
		fixed("fonts", Unhealthy("fonts failed to load", nil)),
	)
	rec := get(t, h, "/health")
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body struct {
		Status string `json:"status"`
		Checks map[string]struct {
			Status  string         `json:"status"`
			Message string         `json:"message"`
			Details map[string]any `json:"details"`
			Error   string         `json:"error"`
		} `json:"checks"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Status != "unhealthy" {
		t.Errorf("status = %q", body.Status)
	}
	if c := body.Checks["cache"]; c.Status != "healthy" || c.Details["entries"] != float64(3) {
		t.Errorf("cache check = %+v", c)
	}
	if c := body.Checks["fonts"]; c.Status != "unhealthy" || c.Error == "" {
		t.Errorf("fonts check = %+v", c)
	}
}

func TestSingleCheck(t *testing.T) {
	h := newRouter(fixed("cache", Degraded("big")))

	rec := get(t, h, "/health/cache")
	if rec.Code != http.StatusOK {
		t.Errorf("GET /health/cache = %d", rec.Code)
	}
	var report struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatal(err)
	}
	if report.Status != "degraded" || report.Message != "big" {
		t.Errorf("report = %+v", report)
	}

	if rec := get(t, h, "/health/nope"); rec.Code != http.StatusNotFound {
		t.Errorf("GET /health/nope = %d, want 404", rec.Code)
	}
}

func TestReadiness_UsesRequestContext(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{})
	agg.Register(NewCheckerFunc("ctx", func(ctx context.Context) Result {
		if ctx.Err() != nil {
			return Unhealthy("cancelled", ctx.Err())
		}
		return Healthy("ok")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := httptest.NewRecorder()
	ReadinessHandler(agg)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil).WithContext(ctx))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("code = %d, want 503 for a cancelled request", rec.Code)
	}
}
