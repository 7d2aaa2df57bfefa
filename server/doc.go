// Package server exposes the renderer over HTTP.
//
// Routes:
//
//	GET    /og/{template}   render a PNG; ?preview=true bypasses the cache
//	GET    /api/templates   template catalog grouped by category
//	GET    /admin/cache     cache statistics (when admin auth is configured)
//	DELETE /admin/cache     clear the cache (when admin auth is configured)
//	GET    /healthz, /readyz, /health, /health/{check}
//	GET    /metrics         when a metrics handler is supplied
//
// Errors are JSON objects with an "error" field.
package server
