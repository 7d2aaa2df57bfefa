package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/ogimage/auth"
	"github.com/jonwraymond/ogimage/cache"
	"github.com/jonwraymond/ogimage/catalog"
	"github.com/jonwraymond/ogimage/config"
	"github.com/jonwraymond/ogimage/fonts"
	"github.com/jonwraymond/ogimage/health"
	"github.com/jonwraymond/ogimage/observe"
	"github.com/jonwraymond/ogimage/render"
	"github.com/jonwraymond/ogimage/resilience"
	"github.com/jonwraymond/ogimage/server"
)

// app holds the long-lived components built from a Config.
type app struct {
	orchestrator *render.Orchestrator
	breaker      *resilience.CircuitBreaker
	health       *health.Aggregator
	handler      http.Handler
}

func build(cfg *config.Config, obs observe.Observer) (*app, error) {
	logger := obs.Logger()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return nil, err
	}

	fontProvider := fonts.NewCached(newFonts(cfg.Fonts))
	store := newStore(cfg.Cache)

	// Shared by every background cache write.
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		IsFailure: func(err error) bool { return !errors.Is(err, cache.ErrInvalidKey) },
		OnStateChange: func(from, to resilience.State) {
			logger.Warn(context.Background(), "cache write breaker state changed",
				observe.Field{Key: "from", Value: from.String()},
				observe.Field{Key: "to", Value: to.String()},
			)
		},
	})
	writes := resilience.NewExecutor(
		resilience.WithCircuitBreaker(breaker),
		resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
			Jitter:  true,
			RetryIf: func(err error) bool { return !errors.Is(err, cache.ErrInvalidKey) },
		})),
	)

	var bulkhead *resilience.Bulkhead
	if cfg.Render.MaxConcurrent > 0 {
		bulkhead = resilience.NewBulkhead(resilience.BulkheadConfig{
			MaxConcurrent: cfg.Render.MaxConcurrent,
			MaxWait:       cfg.Render.MaxWait,
		})
	}

	orchestrator, err := render.New(render.Config{
		Registry:    catalog.Default(),
		Store:       store,
		Fonts:       fontProvider,
		Observe:     mw,
		Bulkhead:    bulkhead,
		CacheWrites: writes,
	})
	if err != nil {
		return nil, err
	}

	agg := health.NewAggregator(health.AggregatorConfig{})
	agg.Register(health.NewCacheChecker(health.CacheCheckerConfig{Store: store, SoftLimit: cfg.Cache.SoftLimit}))
	agg.Register(health.NewFontsChecker(fontProvider))
	agg.Register(health.NewHeapChecker(health.HeapCheckerConfig{}))
	agg.Register(health.NewBreakerChecker("cache-writes", breaker))

	var limiter *resilience.KeyedLimiter
	if cfg.Server.RateLimit.Rate > 0 {
		limiter = resilience.NewKeyedLimiter(resilience.KeyedLimiterConfig{
			Limit: resilience.RateLimiterConfig{
				Rate:  cfg.Server.RateLimit.Rate,
				Burst: cfg.Server.RateLimit.Burst,
			},
		})
	}

	srvConfig := server.Config{
		Orchestrator:   orchestrator,
		Health:         agg,
		AdminRole:      server.AdminRole,
		Limiter:        limiter,
		Metrics:        metricsHandler(cfg.Metrics),
		RequestTimeout: cfg.Server.RequestTimeout,
		Logger:         logger,
	}
	if admin := newAdmin(cfg.Admin); admin != nil {
		srvConfig.Admin = admin
	}
	srv, err := server.New(srvConfig)
	if err != nil {
		return nil, err
	}

	return &app{
		orchestrator: orchestrator,
		breaker:      breaker,
		health:       agg,
		handler:      srv,
	}, nil
}

func newFonts(cfg config.FontsConfig) fonts.Provider {
	if cfg.Dir == "" {
		return fonts.NewGoFontProvider()
	}
	return fonts.NewDirProvider(fonts.DirConfig{Dir: cfg.Dir, Specs: cfg.Specs})
}

func newStore(cfg config.CacheConfig) cache.Store {
	if cfg.Backend == config.BackendMemory {
		return cache.NewMemoryStore()
	}
	return cache.NewDiskStore(cache.DiskConfig{Dir: cfg.Dir})
}

// newAdmin returns nil when no credential is configured. Both credential
// kinds grant the admin role; JWTs must also carry it in their roles claim.
func newAdmin(cfg config.AdminConfig) *auth.CompositeAuthenticator {
	var auths []auth.Authenticator
	if cfg.APIKey != "" {
		keys := auth.NewMemoryAPIKeyStore()
		keys.AddPlain("config", cfg.APIKey, "admin", server.AdminRole)
		auths = append(auths, auth.NewAPIKeyAuthenticator(auth.APIKeyConfig{}, keys))
	}
	if cfg.JWTSecret != "" {
		auths = append(auths, auth.NewJWTAuthenticator(auth.JWTConfig{
			Secret: []byte(cfg.JWTSecret),
			Issuer: cfg.JWTIssuer,
		}))
	}
	if len(auths) == 0 {
		return nil
	}
	return auth.NewCompositeAuthenticator(auths...)
}

// metricsHandler serves the default Prometheus registry, which the
// prometheus metrics exporter registers with.
func metricsHandler(cfg observe.MetricsConfig) http.Handler {
	if !cfg.Enabled || cfg.Exporter != "prometheus" {
		return nil
	}
	return promhttp.Handler()
}
