package observe

import "errors"

var (
	ErrMissingServiceName     = errors.New("observe: service name is required")
	ErrInvalidSamplePct       = errors.New("observe: sample_pct outside [0, 1]")
	ErrInvalidTracingExporter = errors.New("observe: unknown tracing exporter")
	ErrInvalidMetricsExporter = errors.New("observe: unknown metrics exporter")
	ErrInvalidLogLevel        = errors.New("observe: unknown log level")

	// ErrNilObserver is returned by MiddlewareFromObserver(nil).
	ErrNilObserver = errors.New("observe: observer is nil")

	// ErrMissingTemplate means a RenderMeta has no template name, so the
	// span and metric attributes would be unusable.
	ErrMissingTemplate = errors.New("observe: template name is required")
)

// Sampling bounds for TracingConfig.SamplePct.
const (
	MinSamplePct = 0.0
	MaxSamplePct = 1.0
)

// Accepted config values. The empty string is accepted and means the
// subsystem's default.
var (
	ValidTracingExporters = []string{"", "none", "stdout", "otlp", "jaeger"}
	ValidMetricsExporters = []string{"", "none", "stdout", "otlp", "prometheus"}
	ValidLogLevels        = []string{"", "debug", "info", "warn", "error"}
)

// RedactedFields are field keys whose values the logger masks, matched
// case-insensitively. Render params never carry credentials, but admin
// request logs can.
var RedactedFields = []string{
	"authorization",
	"x-api-key",
	"api_key",
	"apikey",
	"password",
	"secret",
	"token",
	"credential",
}
