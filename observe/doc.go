// Package observe provides logging, metrics and tracing for image renders.
//
// An Observer owns the OpenTelemetry providers and the structured logger.
// Middleware wraps a render step so every call gets a span named
// og.render.<template>, render and cache counters, a duration histogram and a
// single log line. The exporters subpackage builds span exporters and metric
// readers by name.
package observe
