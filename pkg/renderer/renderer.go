// Package renderer orchestrates off-screen rendering behind a bounded icon
// cache with in-flight request deduplication.
//
// A request first consults the cache, then any in-flight render for the
// same fingerprint, and only then rasterizes. Every waiter joined to one
// in-flight render receives the identical icon instance (or the identical
// failure). Construct the renderer explicitly and inject it; there is no
// package-level instance.
package renderer

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/snapshot/pkg/cache"
	"github.com/go-drift/snapshot/pkg/errors"
	"github.com/go-drift/snapshot/pkg/graphics"
	"github.com/go-drift/snapshot/pkg/icon"
	"github.com/go-drift/snapshot/pkg/render"
	"github.com/go-drift/snapshot/pkg/scene"
)

// Request describes one render call. Fingerprints are caller-defined
// opaque values expected to encode every visual input affecting the
// output; requests without one bypass the cache and deduplication.
type Request[K comparable] struct {
	// Content is the scene to render.
	Content scene.Node
	// LogicalSize is the layout size; zero falls back to the renderer's
	// DefaultLogicalSize.
	LogicalSize graphics.Size
	// PixelRatio overrides the surface's device ratio when positive.
	PixelRatio float64
	// WaitForImages enables the image-settle second pass.
	WaitForImages bool
	// Fingerprint keys the cache and in-flight deduplication.
	Fingerprint *K
	// InitialImageDelay overrides the renderer option when positive.
	InitialImageDelay time.Duration
	// ImageRepaintDelay overrides the renderer option when positive.
	ImageRepaintDelay time.Duration
}

// pendingRender is one in-flight rasterization. Waiters block on done;
// icon and err are written exactly once before done closes.
type pendingRender struct {
	done chan struct{}
	icon *icon.Icon
	err  error
}

// Renderer renders scenes to encoded icons with caching and deduplication.
type Renderer[K comparable] struct {
	opts   Options
	raster *render.Rasterizer

	// mu guards both maps and covers the full lookup-evict-insert
	// sequence, so concurrent requests observe cache and pending state
	// atomically.
	mu      sync.Mutex
	cache   *cache.Cache[K]
	pending map[K]*pendingRender
}

// New builds a renderer over the given rasterizer.
func New[K comparable](raster *render.Rasterizer, opts Options) (*Renderer[K], error) {
	if raster == nil {
		return nil, errors.InvalidArgumentf("renderer.New", "rasterizer must not be nil")
	}
	if err := opts.validate(); err != nil {
		return nil, errors.New("renderer.New", errors.KindInvalidArgument, err)
	}
	c, err := cache.New[K](opts.MaxCacheEntries, opts.MaxCacheBytes)
	if err != nil {
		return nil, errors.New("renderer.New", errors.KindInvalidArgument, err)
	}
	return &Renderer[K]{
		opts:    opts,
		raster:  raster,
		cache:   c,
		pending: make(map[K]*pendingRender),
	}, nil
}

// Options returns the configuration the renderer was built with.
func (r *Renderer[K]) Options() Options {
	return r.opts
}

// Render resolves the request to an icon: cache hit, joined in-flight
// render, or fresh rasterization whose result populates the cache.
//
// Size and ratio validate eagerly, before any cache or pending lookup.
// An icon too large for the byte budget is still returned, just not
// retained. Failures reach every joined waiter and leave no cache state.
func (r *Renderer[K]) Render(ctx context.Context, req Request[K]) (*icon.Icon, error) {
	const op = "renderer.Render"
	if ctx == nil {
		ctx = context.Background()
	}

	size := req.LogicalSize
	if size == (graphics.Size{}) {
		size = r.opts.DefaultLogicalSize
	}
	if size.Width <= 0 || size.Height <= 0 {
		return nil, errors.InvalidArgumentf(op, "logical size %gx%g is not positive",
			size.Width, size.Height)
	}
	if req.PixelRatio < 0 {
		return nil, errors.InvalidArgumentf(op, "pixel ratio %g is not positive", req.PixelRatio)
	}
	if req.Content == nil {
		return nil, errors.InvalidArgumentf(op, "content must not be nil")
	}

	if !r.opts.EnableCaching || req.Fingerprint == nil {
		return r.rasterize(ctx, req, size)
	}
	key := *req.Fingerprint

	r.mu.Lock()
	if ic, ok := r.cache.Get(key); ok {
		r.mu.Unlock()
		return ic, nil
	}
	if p, ok := r.pending[key]; ok {
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-p.done:
		}
		return p.icon, p.err
	}
	p := &pendingRender{done: make(chan struct{})}
	r.pending[key] = p
	r.mu.Unlock()

	ic, err := r.rasterize(ctx, req, size)

	r.mu.Lock()
	// Unregister unconditionally before any waiter is released, so a
	// later request for this fingerprint starts fresh.
	delete(r.pending, key)
	if err == nil {
		r.cache.Put(key, ic)
	}
	r.mu.Unlock()

	p.icon, p.err = ic, err
	close(p.done)
	return ic, err
}

func (r *Renderer[K]) rasterize(ctx context.Context, req Request[K], size graphics.Size) (*icon.Icon, error) {
	return r.raster.Rasterize(ctx, req.Content, render.Options{
		LogicalSize:       size,
		PixelRatio:        req.PixelRatio,
		WaitForImages:     req.WaitForImages,
		InitialImageDelay: delayOrOption(req.InitialImageDelay, r.opts.InitialImageDelay),
		ImageRepaintDelay: delayOrOption(req.ImageRepaintDelay, r.opts.ImageRepaintDelay),
	})
}

// CacheLen returns the number of cached icons.
func (r *Renderer[K]) CacheLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Len()
}

// CacheBytes returns the total encoded size of cached icons.
func (r *Renderer[K]) CacheBytes() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.TotalBytes()
}

// CachedIcon returns the cached icon for key without touching recency
// order.
func (r *Renderer[K]) CachedIcon(key K) (*icon.Icon, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cache.Peek(key)
}

// PendingLen returns the number of in-flight renders.
func (r *Renderer[K]) PendingLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// ClearCache drops every cached icon. In-flight renders are unaffected.
func (r *Renderer[K]) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Clear()
}

// Evict removes the cached icon for key if present.
func (r *Renderer[K]) Evict(key K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache.Remove(key)
}

func delayOrOption(perCall, option time.Duration) time.Duration {
	if perCall > 0 {
		return perCall
	}
	return option
}
