// Package render turns a template name and request parameters into a PNG.
//
// Orchestrator.Render runs the whole pipeline for one request:
//
//  1. look the template up in the registry
//  2. validate the parameters against its schema
//  3. derive the cache key from the submitted parameters
//  4. serve a cached image when one exists
//  5. build the markup tree, lay it out as SVG and rasterize it
//  6. store the result in the background
//
// Failures come back as typed errors (TemplateNotFoundError,
// InvalidParametersError, RenderFailedError) that match the package
// sentinels with errors.Is. StatusOf classifies any error for the HTTP layer.
//
// Cache writes never fail a render. They run detached from the request
// context and are retried through a resilience.Executor; Wait blocks until
// every pending write has finished.
package render
