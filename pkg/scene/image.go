package scene

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-drift/snapshot/pkg/graphics"
)

// ImageSource supplies a decoded image that may still be loading.
type ImageSource interface {
	// Resolve returns the decoded image and whether it has arrived.
	Resolve() (image.Image, bool)
}

// StaticImage is an ImageSource that is ready as soon as it holds pixels.
type StaticImage struct {
	Image image.Image
}

func (s StaticImage) Resolve() (image.Image, bool) {
	return s.Image, s.Image != nil
}

// AsyncImage is an ImageSource fed by a decoder running elsewhere. It
// stays pending until Complete is called.
type AsyncImage struct {
	mu    sync.Mutex
	img   image.Image
	ready bool
}

// Complete delivers the decoded image and marks the source ready.
func (a *AsyncImage) Complete(img image.Image) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.img = img
	a.ready = true
}

func (a *AsyncImage) Resolve() (image.Image, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.img, a.ready
}

// ImageFit controls how an image is scaled within its box.
type ImageFit int

const (
	// ImageFitContain scales the image to fit within its bounds.
	// This is the zero value, making it the default for [Image].
	ImageFitContain ImageFit = iota
	// ImageFitFill stretches the image to fill its bounds.
	ImageFitFill
	// ImageFitCover scales the image to cover its bounds.
	ImageFitCover
)

// String returns a human-readable representation of the image fit mode.
func (f ImageFit) String() string {
	switch f {
	case ImageFitFill:
		return "fill"
	case ImageFitContain:
		return "contain"
	case ImageFitCover:
		return "cover"
	default:
		return fmt.Sprintf("ImageFit(%d)", int(f))
	}
}

// Image draws a bitmap scaled into its bounds.
type Image struct {
	BaseNode
	// Source supplies the bitmap; may still be loading at paint time.
	Source ImageSource
	// Width overrides the intrinsic width if non-zero.
	Width float64
	// Height overrides the intrinsic height if non-zero.
	Height float64
	// Fit controls how the image is scaled within its bounds.
	Fit ImageFit
}

// NewImage builds an image node for the given source.
func NewImage(source ImageSource) *Image {
	img := &Image{Source: source}
	img.SetSelf(img)
	return img
}

// PendingImage reports whether the source has not resolved yet.
func (r *Image) PendingImage() bool {
	if r.Source == nil {
		return false
	}
	_, ok := r.Source.Resolve()
	return !ok
}

func (r *Image) Layout(constraints Constraints) graphics.Size {
	intrinsic := r.intrinsicSize()
	size := intrinsic
	if r.Width > 0 && r.Height > 0 {
		size = graphics.Size{Width: r.Width, Height: r.Height}
	} else if r.Width > 0 && intrinsic.Width > 0 {
		scale := r.Width / intrinsic.Width
		size = graphics.Size{Width: r.Width, Height: intrinsic.Height * scale}
	} else if r.Height > 0 && intrinsic.Height > 0 {
		scale := r.Height / intrinsic.Height
		size = graphics.Size{Width: intrinsic.Width * scale, Height: r.Height}
	}
	size = constraints.Constrain(size)
	r.SetSize(size)
	return size
}

func (r *Image) Paint(ctx *PaintContext) {
	size := r.Size()
	if size.IsEmpty() {
		return
	}
	img, ok := r.resolve()
	if !ok {
		return
	}
	bounds := img.Bounds()
	intrinsic := graphics.Size{
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}
	if intrinsic.IsEmpty() {
		return
	}
	srcRect, dstRect := fitRects(r.Fit, intrinsic, size)
	if srcRect.IsEmpty() || dstRect.IsEmpty() {
		return
	}
	ctx.Canvas.Save()
	ctx.Canvas.ClipRect(graphics.RectFromSize(size))
	ctx.Canvas.DrawImageRect(img, srcRect, dstRect)
	ctx.Canvas.Restore()
}

func (r *Image) VisitChildren(visit func(Node) bool) bool {
	return true
}

func (r *Image) resolve() (image.Image, bool) {
	if r.Source == nil {
		return nil, false
	}
	img, ok := r.Source.Resolve()
	if !ok || img == nil {
		return nil, false
	}
	return img, true
}

func (r *Image) intrinsicSize() graphics.Size {
	img, ok := r.resolve()
	if !ok {
		return graphics.Size{}
	}
	bounds := img.Bounds()
	return graphics.Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
}

// fitRects computes which region of the source maps onto which region of
// the destination box for the given fit mode.
func fitRects(fit ImageFit, intrinsic, box graphics.Size) (src, dst graphics.Rect) {
	src = graphics.RectFromSize(intrinsic)
	dst = graphics.RectFromSize(box)
	switch fit {
	case ImageFitFill:
		return src, dst
	case ImageFitCover:
		scale := max(box.Width/intrinsic.Width, box.Height/intrinsic.Height)
		if scale <= 0 {
			return graphics.Rect{}, graphics.Rect{}
		}
		srcW := box.Width / scale
		srcH := box.Height / scale
		src = graphics.RectFromLTWH(
			(intrinsic.Width-srcW)/2,
			(intrinsic.Height-srcH)/2,
			srcW, srcH,
		)
		return src, dst
	default: // contain
		scale := min(box.Width/intrinsic.Width, box.Height/intrinsic.Height)
		if scale <= 0 {
			return graphics.Rect{}, graphics.Rect{}
		}
		dstW := intrinsic.Width * scale
		dstH := intrinsic.Height * scale
		dst = graphics.RectFromLTWH(
			(box.Width-dstW)/2,
			(box.Height-dstH)/2,
			dstW, dstH,
		)
		return src, dst
	}
}
