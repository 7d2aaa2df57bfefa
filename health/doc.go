// Package health reports whether the image service can do its job.
//
// A Checker inspects one dependency and returns a Result with a Status of
// Healthy, Degraded or Unhealthy. The package ships checkers for the image
// cache, the font table, a circuit breaker and the Go heap; CheckerFunc
// adapts anything else.
//
// An Aggregator runs every registered checker under a shared timeout and
// folds the results into one overall status: any unhealthy check makes the
// whole unhealthy, otherwise any degraded check makes it degraded.
//
// # HTTP Endpoints
//
// Mount attaches the probes to a chi router:
//
//	r := chi.NewRouter()
//	health.Mount(r, agg)
//
//	GET /healthz          liveness, always 200 "OK"
//	GET /readyz           readiness, 503 when any check is unhealthy
//	GET /health           JSON report of every check
//	GET /health/{check}   JSON report of a single check
package health
