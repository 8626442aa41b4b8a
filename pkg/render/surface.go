package render

import (
	"context"
	"image"

	"github.com/go-drift/snapshot/pkg/graphics"
)

// Surface describes a renderable raster target: the device pixel ratio it
// rasterises at and the background it clears to. Construct one explicitly
// at process startup and hand it to the rasterizer; there is no implicit
// package-level surface.
type Surface struct {
	pixelRatio float64
	background graphics.Color
}

// NewSurface builds a surface with the given device pixel ratio. A
// non-positive ratio falls back to 1.0.
func NewSurface(pixelRatio float64) *Surface {
	if pixelRatio <= 0 {
		pixelRatio = 1.0
	}
	return &Surface{pixelRatio: pixelRatio, background: graphics.ColorTransparent}
}

// WithBackground returns a copy of the surface clearing to the given color.
func (s *Surface) WithBackground(c graphics.Color) *Surface {
	copied := *s
	copied.background = c
	return &copied
}

// PixelRatio returns the device pixel ratio.
func (s *Surface) PixelRatio() float64 {
	return s.pixelRatio
}

// Background returns the clear color.
func (s *Surface) Background() graphics.Color {
	return s.background
}

// Ambient is the inherited visual scope resolved from a caller's context:
// the surface to render on plus themed attributes to merge into the
// isolated pass.
type Ambient struct {
	Surface    *Surface
	Background graphics.Color
}

// AmbientProvider resolves an inherited visual scope for a render call.
// Returning false is legal; the rasterizer then falls back to its
// process-wide default surface.
type AmbientProvider interface {
	Resolve(ctx context.Context) (*Ambient, bool)
}

// Frame holds the captured pixels of one composited pass. Dispose releases
// the buffer reference as soon as the bytes are extracted; under a
// retained-mode raster backend this is where texture memory would be
// returned.
type Frame struct {
	img image.Image
}

// NewFrame wraps captured pixels.
func NewFrame(img image.Image) *Frame {
	return &Frame{img: img}
}

// Image returns the captured pixels, or nil after Dispose.
func (f *Frame) Image() image.Image {
	return f.img
}

// Dispose releases the pixel buffer. Safe to call more than once.
func (f *Frame) Dispose() {
	f.img = nil
}
