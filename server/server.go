package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/jonwraymond/ogimage/auth"
	"github.com/jonwraymond/ogimage/health"
	"github.com/jonwraymond/ogimage/observe"
	"github.com/jonwraymond/ogimage/render"
	"github.com/jonwraymond/ogimage/resilience"
)

// ErrNilOrchestrator indicates Config.Orchestrator is nil.
var ErrNilOrchestrator = errors.New("server: orchestrator is nil")

// AdminRole is required of callers on the admin routes when set in Config.
const AdminRole = "admin"

// Config wires a Server to its collaborators.
type Config struct {
	// Orchestrator renders images. Required.
	Orchestrator *render.Orchestrator

	// Health backs the probe endpoints. Nil serves liveness only.
	Health *health.Aggregator

	// Admin authenticates callers of the admin routes. Nil disables them.
	Admin auth.Authenticator

	// AdminRole, when set, must be held by admin callers.
	AdminRole string

	// Limiter rate limits image requests per client address. Nil disables it.
	Limiter *resilience.KeyedLimiter

	// Metrics serves /metrics when set.
	Metrics http.Handler

	// RequestTimeout bounds image requests. Zero disables it.
	RequestTimeout time.Duration

	// Logger receives one line per request.
	// Default: observe.NopLogger()
	Logger observe.Logger

	// Propagator extracts the caller's trace context from request headers.
	// Default: otel.GetTextMapPropagator()
	Propagator propagation.TextMapPropagator
}

// Server is the HTTP front end. It implements http.Handler.
type Server struct {
	orchestrator *render.Orchestrator
	logger       observe.Logger
	propagator   propagation.TextMapPropagator
	router       chi.Router
}

// New builds the router for config.
func New(config Config) (*Server, error) {
	if config.Orchestrator == nil {
		return nil, ErrNilOrchestrator
	}

	// Apply defaults
	if config.Logger == nil {
		config.Logger = observe.NopLogger()
	}
	if config.Propagator == nil {
		config.Propagator = otel.GetTextMapPropagator()
	}

	s := &Server{
		orchestrator: config.Orchestrator,
		logger:       config.Logger,
		propagator:   config.Propagator,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		if config.Limiter != nil {
			r.Use(rateLimit(config.Limiter))
		}
		if config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(config.RequestTimeout))
		}
		r.Get("/og/{template}", s.handleImage)
	})
	r.Get("/api/templates", s.handleTemplates)

	if config.Admin != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.Middleware(config.Admin, auth.MiddlewareConfig{
				Role:     config.AdminRole,
				OnDenied: s.logDenied,
			}))
			r.Get("/cache", s.handleCacheStats)
			r.Delete("/cache", s.handleCacheClear)
		})
	}

	if config.Health != nil {
		health.Mount(r, config.Health)
	} else {
		r.Get("/healthz", health.LivenessHandler())
	}
	if config.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", config.Metrics)
	}

	s.router = r
	return s, nil
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logDenied(r *http.Request, err error) {
	s.logger.Warn(r.Context(), "admin request denied",
		observe.Field{Key: "path", Value: r.URL.Path},
		observe.Field{Key: "request_id", Value: middleware.GetReqID(r.Context())},
		observe.Field{Key: "error", Value: err.Error()},
	)
}

// Ensure Server implements http.Handler
var _ http.Handler = (*Server)(nil)
