package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/ogimage/fonts"
	"github.com/jonwraymond/ogimage/observe"
	"github.com/jonwraymond/ogimage/secret"
)

// Cache backends.
const (
	BackendDisk   = "disk"
	BackendMemory = "memory"
)

// Environment overrides.
const (
	EnvAddr         = "OGX_ADDR"
	EnvCacheDir     = "OGX_CACHE_DIR"
	EnvCacheBackend = "OGX_CACHE_BACKEND"
	EnvFontsDir     = "OGX_FONTS_DIR"
	EnvLogLevel     = "OGX_LOG_LEVEL"
	EnvAdminAPIKey  = "OGX_ADMIN_API_KEY"
	EnvAdminJWT     = "OGX_ADMIN_JWT_SECRET"
)

// MinJWTSecretLen is the shortest accepted HMAC secret, in bytes.
const MinJWTSecretLen = 32

var (
	ErrInvalidBackend = errors.New("config: invalid cache backend")
	ErrMissingAddr    = errors.New("config: server address is required")
	ErrInvalidValue   = errors.New("config: invalid value")
	ErrWeakJWTSecret  = errors.New("config: jwt secret is too short")
)

// Config is the complete server configuration.
type Config struct {
	ServiceName string `yaml:"service_name"`

	Server  ServerConfig          `yaml:"server"`
	Cache   CacheConfig           `yaml:"cache"`
	Fonts   FontsConfig           `yaml:"fonts"`
	Render  RenderConfig          `yaml:"render"`
	Admin   AdminConfig           `yaml:"admin"`
	Log     observe.LoggingConfig `yaml:"log"`
	Tracing observe.TracingConfig `yaml:"tracing"`
	Metrics observe.MetricsConfig `yaml:"metrics"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// RequestTimeout bounds each request. Zero disables it.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig configures the per-client limit on image requests.
// A zero Rate disables limiting.
type RateLimitConfig struct {
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

// CacheConfig selects and configures the image store.
type CacheConfig struct {
	Backend string `yaml:"backend"`

	// Dir is the disk backend root. Empty uses the store's default.
	Dir string `yaml:"dir"`

	// SoftLimit is the size in bytes above which the cache reports
	// itself degraded. Zero disables the check.
	SoftLimit int64 `yaml:"soft_limit"`
}

// FontsConfig selects the font source. Without a Dir the embedded Go
// fonts are used.
type FontsConfig struct {
	Dir   string       `yaml:"dir"`
	Specs []fonts.Spec `yaml:"specs"`
}

// RenderConfig bounds rendering work.
type RenderConfig struct {
	// MaxConcurrent caps concurrent rasterizations. Zero is unlimited.
	MaxConcurrent int `yaml:"max_concurrent"`

	// MaxWait caps how long a render queues for a slot.
	MaxWait time.Duration `yaml:"max_wait"`
}

// AdminConfig holds the credentials guarding the admin endpoints.
type AdminConfig struct {
	APIKey    string `yaml:"api_key"`
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`

	// SecretsDir roots relative secretref:file references.
	SecretsDir string `yaml:"secrets_dir"`
}

// Enabled reports whether any admin credential is configured.
func (a AdminConfig) Enabled() bool {
	return a.APIKey != "" || a.JWTSecret != ""
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		ServiceName: "ogx",
		Server: ServerConfig{
			Addr:            ":3000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Cache: CacheConfig{Backend: BackendDisk},
		Log:   observe.LoggingConfig{Enabled: true, Level: "info"},
	}
}

// Load builds the configuration from defaults, the YAML file at path and
// the environment, then resolves admin secrets and validates the result.
// A missing file is not an error; an empty path skips the file.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.ResolveSecrets(ctx, nil); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	for env, field := range map[string]*string{
		EnvAddr:         &c.Server.Addr,
		EnvCacheDir:     &c.Cache.Dir,
		EnvCacheBackend: &c.Cache.Backend,
		EnvFontsDir:     &c.Fonts.Dir,
		EnvLogLevel:     &c.Log.Level,
		EnvAdminAPIKey:  &c.Admin.APIKey,
		EnvAdminJWT:     &c.Admin.JWTSecret,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
	c.Cache.Backend = strings.ToLower(c.Cache.Backend)
	c.Log.Level = strings.ToLower(c.Log.Level)
}

// ResolveSecrets replaces secret references in the admin credentials.
// A nil resolver reads env and file references, files relative to
// Admin.SecretsDir.
func (c *Config) ResolveSecrets(ctx context.Context, r *secret.Resolver) error {
	if r == nil {
		r = secret.NewResolver(true, secret.NewEnvProvider(), secret.NewFileProvider(c.Admin.SecretsDir))
	}
	err := r.ResolveAll(ctx, map[string]*string{
		"admin.api_key":    &c.Admin.APIKey,
		"admin.jwt_secret": &c.Admin.JWTSecret,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrMissingAddr
	}
	switch c.Cache.Backend {
	case BackendDisk, BackendMemory:
	default:
		return fmt.Errorf("%w: %q (use %s or %s)", ErrInvalidBackend, c.Cache.Backend, BackendDisk, BackendMemory)
	}

	for name, v := range map[string]float64{
		"server.rate_limit.rate":  c.Server.RateLimit.Rate,
		"server.rate_limit.burst": float64(c.Server.RateLimit.Burst),
		"cache.soft_limit":        float64(c.Cache.SoftLimit),
		"render.max_concurrent":   float64(c.Render.MaxConcurrent),
		"render.max_wait":         float64(c.Render.MaxWait),
		"server.request_timeout":  float64(c.Server.RequestTimeout),
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidValue, name)
		}
	}

	if c.Admin.JWTSecret != "" && len(c.Admin.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("%w: need at least %d bytes", ErrWeakJWTSecret, MinJWTSecretLen)
	}
	if c.Log.Enabled && !slices.Contains(observe.ValidLogLevels, c.Log.Level) {
		return fmt.Errorf("%w: %q", observe.ErrInvalidLogLevel, c.Log.Level)
	}

	obs := c.Observe("")
	return obs.Validate()
}

// Observe returns the telemetry configuration for version.
func (c *Config) Observe(version string) observe.Config {
	return observe.Config{
		ServiceName: c.ServiceName,
		Version:     version,
		Tracing:     c.Tracing,
		Metrics:     c.Metrics,
		Logging:     c.Log,
	}
}
