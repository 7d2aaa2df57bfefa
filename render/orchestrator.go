package render

import (
	"context"
	"errors"
	"fmt"
	"image/png"
	"sync"

	"github.com/jonwraymond/ogimage/cache"
	"github.com/jonwraymond/ogimage/fonts"
	"github.com/jonwraymond/ogimage/markup"
	"github.com/jonwraymond/ogimage/observe"
	"github.com/jonwraymond/ogimage/raster"
	"github.com/jonwraymond/ogimage/resilience"
	"github.com/jonwraymond/ogimage/templates"
	"github.com/jonwraymond/ogimage/vector"
)

// CacheStatus tells where the bytes of a Result came from.
type CacheStatus string

const (
	CacheHit     CacheStatus = observe.CacheHit
	CacheMiss    CacheStatus = observe.CacheMiss
	CachePreview CacheStatus = observe.CachePreview
)

// Options adjusts a single render.
type Options struct {
	// BypassCache skips both the cache lookup and the cache write.
	BypassCache bool

	// Config overrides the template's default size. Zero fields keep the default.
	Config templates.Config
}

// Result is a rendered image.
type Result struct {
	PNG    []byte
	Key    string
	Status CacheStatus
}

// Config wires an Orchestrator to its collaborators.
type Config struct {
	// Registry holds the templates. Required.
	Registry *templates.Registry

	// Store holds rendered images.
	// Default: cache.NewMemoryStore()
	Store cache.Store

	// Keyer derives cache keys.
	// Default: cache.NewDefaultKeyer()
	Keyer cache.Keyer

	// Fonts supplies the font table. It is loaded once and shared.
	// Default: fonts.NewGoFontProvider()
	Fonts fonts.Provider

	// Vector lays out markup as SVG.
	// Default: vector.NewSVGRenderer()
	Vector vector.Renderer

	// Raster converts SVG to PNG.
	// Default: raster.NewSVGRasterizer(png.DefaultCompression)
	Raster raster.Rasterizer

	// Observe records spans, metrics and one log line per render.
	// Default: observe.NopMiddleware()
	Observe *observe.Middleware

	// Bulkhead bounds concurrent rasterizations. Nil means unlimited.
	Bulkhead *resilience.Bulkhead

	// CacheWrites runs background cache writes.
	// Default: three attempts with exponential backoff.
	CacheWrites *resilience.Executor
}

// Orchestrator runs render requests.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Context: ctx bounds the render; background cache writes outlive it.
// - Errors: TemplateNotFoundError, InvalidParametersError or
// RenderFailedError. Cache failures are never returned.
type Orchestrator struct {
	registry *templates.Registry
	store    cache.Store
	keyer    cache.Keyer
	fonts    fonts.Provider
	vector   vector.Renderer
	raster   raster.Rasterizer
	observe  *observe.Middleware
	bulkhead *resilience.Bulkhead
	writes   *resilience.Executor

	pending sync.WaitGroup
}

// New creates an Orchestrator.
func New(config Config) (*Orchestrator, error) {
	if config.Registry == nil {
		return nil, ErrNilRegistry
	}

	// Apply defaults
	if config.Store == nil {
		config.Store = cache.NewMemoryStore()
	}
	if config.Keyer == nil {
		config.Keyer = cache.NewDefaultKeyer()
	}
	if config.Fonts == nil {
		config.Fonts = fonts.NewGoFontProvider()
	}
	if _, ok := config.Fonts.(*fonts.Cached); !ok {
		config.Fonts = fonts.NewCached(config.Fonts)
	}
	if config.Vector == nil {
		config.Vector = vector.NewSVGRenderer()
	}
	if config.Raster == nil {
		config.Raster = raster.NewSVGRasterizer(png.DefaultCompression)
	}
	if config.Observe == nil {
		config.Observe = observe.NopMiddleware()
	}
	if config.CacheWrites == nil {
		config.CacheWrites = resilience.NewExecutor(
			resilience.WithRetry(resilience.NewRetry(resilience.RetryConfig{
				Jitter:  true,
				RetryIf: func(err error) bool { return !errors.Is(err, cache.ErrInvalidKey) },
			})),
		)
	}

	return &Orchestrator{
		registry: config.Registry,
		store:    config.Store,
		keyer:    config.Keyer,
		fonts:    config.Fonts,
		vector:   config.Vector,
		raster:   config.Raster,
		observe:  config.Observe,
		bulkhead: config.Bulkhead,
		writes:   config.CacheWrites,
	}, nil
}

// Registry returns the template registry.
func (o *Orchestrator) Registry() *templates.Registry {
	return o.registry
}

// Store returns the image store.
func (o *Orchestrator) Store() cache.Store {
	return o.store
}

// Render produces the PNG for template name with raw request parameters.
//
// The cache key is derived from raw as submitted, so requests that differ
// only in parameters the schema ignores or defaults are cached separately.
func (o *Orchestrator) Render(ctx context.Context, name string, raw map[string]string, opts Options) (*Result, error) {
	tmpl, ok := o.registry.Get(name)
	if !ok {
		return nil, &TemplateNotFoundError{Name: name, Available: o.registry.Names()}
	}

	params, err := tmpl.Schema.Validate(raw)
	if err != nil {
		var verr *templates.ValidationError
		if !errors.As(err, &verr) {
			verr = &templates.ValidationError{Issues: []templates.Issue{{Message: err.Error()}}}
		}
		return nil, &InvalidParametersError{Template: name, Err: verr}
	}

	key := o.keyer.Key(name, raw)
	size := tmpl.DefaultConfig.Merge(opts.Config)
	meta := observe.RenderMeta{
		Template: name,
		Key:      key,
		Width:    size.Width,
		Height:   size.Height,
		Preview:  opts.BypassCache,
	}

	var result *Result
	run := o.observe.Wrap(func(ctx context.Context, meta observe.RenderMeta) (observe.Outcome, error) {
		if !opts.BypassCache {
			if data, ok := o.store.Get(ctx, key); ok {
				result = &Result{PNG: data, Key: key, Status: CacheHit}
				return observe.Outcome{Cache: observe.CacheHit, Bytes: len(data)}, nil
			}
		}

		status := CacheMiss
		if opts.BypassCache {
			status = CachePreview
		}
		out := observe.Outcome{Cache: string(status)}

		data, err := o.produce(ctx, tmpl, params, size)
		if err != nil {
			return out, &RenderFailedError{Template: name, Err: err}
		}
		if !opts.BypassCache {
			o.storeAsync(ctx, meta, data)
		}

		result = &Result{PNG: data, Key: key, Status: status}
		out.Bytes = len(data)
		return out, nil
	})

	if _, err := run(ctx, meta); err != nil {
		return nil, err
	}
	return result, nil
}

// Wait blocks until every background cache write has finished.
func (o *Orchestrator) Wait() {
	o.pending.Wait()
}

func (o *Orchestrator) produce(ctx context.Context, tmpl *templates.Template, params templates.Params, size templates.Config) ([]byte, error) {
	root, err := build(tmpl, params, size)
	if err != nil {
		return nil, err
	}

	table, err := o.fonts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}

	svg, err := o.vector.Render(ctx, markup.Normalize(root), vector.Options{
		Width:  size.Width,
		Height: size.Height,
		Fonts:  table,
	})
	if err != nil {
		return nil, err
	}

	var data []byte
	rasterize := func(ctx context.Context) error {
		var err error
		data, err = o.raster.Rasterize(ctx, svg, raster.Options{FitToWidth: size.Width})
		return err
	}
	if o.bulkhead != nil {
		err = o.bulkhead.Execute(ctx, rasterize)
	} else {
		err = rasterize(ctx)
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// build runs the template render function, turning a panic into an error.
func build(tmpl *templates.Template, params templates.Params, size templates.Config) (root *markup.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			root, err = nil, fmt.Errorf("%w: %v", ErrTemplatePanic, r)
		}
	}()
	root = tmpl.Render(params, size)
	if root == nil {
		return nil, vector.ErrNilNode
	}
	return root, nil
}

func (o *Orchestrator) storeAsync(ctx context.Context, meta observe.RenderMeta, data []byte) {
	ctx = context.WithoutCancel(ctx)
	o.pending.Go(func() {
		err := o.writes.Execute(ctx, func(ctx context.Context) error {
			return o.store.Put(ctx, meta.Key, data)
		})
		if err != nil {
			o.observe.CacheWriteFailed(ctx, meta, err)
		}
	})
}
