package server

import (
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jonwraymond/ogimage/observe"
	"github.com/jonwraymond/ogimage/resilience"
)

func errorField(err error) observe.Field {
	return observe.Field{Key: "error", Value: err.Error()}
}

// logRequests joins the caller's trace, if any, and writes one log line
// per request after it completes. Server errors log at error level,
// client errors at warn.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(s.propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header)))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []observe.Field{
			{Key: "method", Value: r.Method},
			{Key: "path", Value: r.URL.Path},
			{Key: "status", Value: status},
			{Key: "bytes", Value: ww.BytesWritten()},
			{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			{Key: "request_id", Value: middleware.GetReqID(r.Context())},
		}
		if v := ww.Header().Get("X-Cache"); v != "" {
			fields = append(fields, observe.Field{Key: "cache", Value: v})
		}

		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error(r.Context(), "request", fields...)
		case status >= http.StatusBadRequest:
			s.logger.Warn(r.Context(), "request", fields...)
		default:
			s.logger.Info(r.Context(), "request", fields...)
		}
	})
}

// rateLimit answers 429 once a client address exhausts its bucket.
func rateLimit(limiter *resilience.KeyedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				w.Header().Set("Retry-After", "1")
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "Too many requests"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey is the host part of the remote address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
