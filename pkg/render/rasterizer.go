// Package render turns a scene tree into encoded raster bytes off-screen.
//
// Each render builds an isolated layout/paint pass sized exactly to the
// requested logical size, optionally waits for asynchronously-loading
// images to settle, captures one composited frame, and encodes it as PNG.
package render

import (
	"context"
	"time"

	"github.com/go-drift/snapshot/pkg/errors"
	"github.com/go-drift/snapshot/pkg/graphics"
	"github.com/go-drift/snapshot/pkg/icon"
	"github.com/go-drift/snapshot/pkg/scene"
)

// Default image-settle delays for the second-pass protocol.
const (
	// DefaultInitialImageDelay gives the image-loading subsystem one frame
	// to start before the pending-image check runs.
	DefaultInitialImageDelay = 16 * time.Millisecond
	// DefaultImageRepaintDelay is how long detected pending images get to
	// finish decoding before the single repaint.
	DefaultImageRepaintDelay = 200 * time.Millisecond
)

// Options configures a single rasterization.
type Options struct {
	// LogicalSize is the layout size; both dimensions must be positive.
	LogicalSize graphics.Size
	// PixelRatio is the raster scale factor. Zero means use the surface's
	// device ratio; explicit values must be positive.
	PixelRatio float64
	// WaitForImages enables the image-settle second pass.
	WaitForImages bool
	// InitialImageDelay overrides DefaultInitialImageDelay when positive.
	InitialImageDelay time.Duration
	// ImageRepaintDelay overrides DefaultImageRepaintDelay when positive.
	ImageRepaintDelay time.Duration
}

// Rasterizer renders scene trees off-screen. The zero value is unusable;
// construct with NewRasterizer and a default surface, or install an
// AmbientProvider to resolve surfaces per call.
type Rasterizer struct {
	// Surface is the process-wide fallback when no ambient scope resolves.
	Surface *Surface
	// Ambient optionally supplies an inherited visual scope per call.
	Ambient AmbientProvider
	// Clock drives the image-settle delays; nil means SystemClock.
	Clock Clock
}

// NewRasterizer builds a rasterizer with the given default surface.
func NewRasterizer(surface *Surface) *Rasterizer {
	return &Rasterizer{Surface: surface, Clock: SystemClock}
}

// renderScope owns everything created for one isolated pass. dispose runs
// deferred so teardown happens on every exit path, in fixed order: the
// tree detaches first, then the pipeline owner resets.
type renderScope struct {
	root  scene.Node
	owner *scene.PipelineOwner
}

func newRenderScope(root scene.Node) *renderScope {
	owner := &scene.PipelineOwner{}
	scene.Attach(root, owner)
	return &renderScope{root: root, owner: owner}
}

func (s *renderScope) dispose() {
	scene.Detach(s.root)
	s.owner.Reset()
}

// Rasterize renders root at the requested logical size and ratio and
// returns the encoded icon.
//
// Failure kinds: invalid-argument for non-positive sizes or ratios,
// unavailable when no surface resolves, render when frame capture or
// encoding produces no data. Teardown of the isolated pass runs on every
// path.
func (r *Rasterizer) Rasterize(ctx context.Context, root scene.Node, opts Options) (*icon.Icon, error) {
	const op = "render.Rasterize"
	if ctx == nil {
		ctx = context.Background()
	}
	if root == nil {
		return nil, errors.InvalidArgumentf(op, "content must not be nil")
	}
	if opts.LogicalSize.Width <= 0 || opts.LogicalSize.Height <= 0 {
		return nil, errors.InvalidArgumentf(op, "logical size %gx%g is not positive",
			opts.LogicalSize.Width, opts.LogicalSize.Height)
	}
	if opts.PixelRatio < 0 {
		return nil, errors.InvalidArgumentf(op, "pixel ratio %g is not positive", opts.PixelRatio)
	}

	surface, background := r.resolveSurface(ctx)
	if surface == nil {
		return nil, errors.Unavailablef(op,
			"no render surface available; construct a Surface before rendering")
	}
	ratio := opts.PixelRatio
	if ratio == 0 {
		ratio = surface.PixelRatio()
	}

	scope := newRenderScope(root)
	defer scope.dispose()

	pass := func() *graphics.DisplayList {
		root.Layout(scene.Tight(opts.LogicalSize))
		var rec graphics.PictureRecorder
		canvas := rec.BeginRecording(opts.LogicalSize)
		if background.Alpha() > 0 {
			canvas.Clear(background)
		}
		root.Paint(&scene.PaintContext{Canvas: canvas})
		return rec.EndRecording()
	}

	picture := pass()

	if opts.WaitForImages {
		if err := r.sleep(ctx, delayOrDefault(opts.InitialImageDelay, DefaultInitialImageDelay)); err != nil {
			return nil, err
		}
		if scene.HasPendingImages(root) {
			if err := r.sleep(ctx, delayOrDefault(opts.ImageRepaintDelay, DefaultImageRepaintDelay)); err != nil {
				return nil, err
			}
			scope.owner.SchedulePaint(root)
		}
		// One repaint, best effort: images still unresolved after this
		// pass render as whatever the nodes paint without them.
		if nodes := scope.owner.FlushPaint(); len(nodes) > 0 {
			picture = pass()
		}
	}

	soft := graphics.NewSoftCanvas(opts.LogicalSize, ratio)
	picture.Paint(soft)
	frame := NewFrame(soft.Image())
	defer frame.Dispose()

	data, err := graphics.EncodePNG(frame.Image())
	if err != nil {
		return nil, errors.New(op, errors.KindRender, err)
	}
	return icon.New(data, opts.LogicalSize, ratio), nil
}

// resolveSurface prefers the ambient scope, then the process-wide default.
func (r *Rasterizer) resolveSurface(ctx context.Context) (*Surface, graphics.Color) {
	if r.Ambient != nil {
		if amb, ok := r.Ambient.Resolve(ctx); ok && amb != nil && amb.Surface != nil {
			background := amb.Background
			if background == graphics.ColorTransparent {
				background = amb.Surface.Background()
			}
			return amb.Surface, background
		}
	}
	if r.Surface != nil {
		return r.Surface, r.Surface.Background()
	}
	return nil, graphics.ColorTransparent
}

func (r *Rasterizer) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	clock := r.Clock
	if clock == nil {
		clock = SystemClock
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-clock.After(d):
		return nil
	}
}

func delayOrDefault(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
