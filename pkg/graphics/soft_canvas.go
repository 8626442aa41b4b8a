package graphics

import (
	"image"
	"math"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

// SoftCanvas is a software raster Canvas. Drawing happens into an RGBA
// buffer sized to the logical size times the pixel ratio; the ratio is
// applied once as the base scale so callers keep working in logical units.
type SoftCanvas struct {
	dc         *gg.Context
	size       Size
	pixelRatio float64
}

// NewSoftCanvas allocates a raster canvas for the given logical size and
// pixel ratio. Pixel dimensions round up so fractional logical sizes never
// lose the trailing row or column.
func NewSoftCanvas(size Size, pixelRatio float64) *SoftCanvas {
	w := int(math.Ceil(size.Width * pixelRatio))
	h := int(math.Ceil(size.Height * pixelRatio))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dc := gg.NewContext(w, h)
	dc.Scale(pixelRatio, pixelRatio)
	return &SoftCanvas{dc: dc, size: size, pixelRatio: pixelRatio}
}

// Image returns the backing pixel buffer.
func (c *SoftCanvas) Image() image.Image {
	return c.dc.Image()
}

// PixelRatio returns the raster scale factor the canvas was created with.
func (c *SoftCanvas) PixelRatio() float64 {
	return c.pixelRatio
}

func (c *SoftCanvas) Save() {
	c.dc.Push()
}

func (c *SoftCanvas) Restore() {
	c.dc.Pop()
}

func (c *SoftCanvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
}

func (c *SoftCanvas) Scale(sx, sy float64) {
	c.dc.Scale(sx, sy)
}

func (c *SoftCanvas) ClipRect(rect Rect) {
	c.dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	c.dc.Clip()
}

func (c *SoftCanvas) Clear(color Color) {
	c.dc.SetColor(color.NRGBA())
	c.dc.Clear()
}

func (c *SoftCanvas) DrawRect(rect Rect, paint Paint) {
	c.dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	c.finish(paint)
}

func (c *SoftCanvas) DrawRRect(rrect RRect, paint Paint) {
	r := rrect.Rect
	c.dc.DrawRoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), rrect.Radius)
	c.finish(paint)
}

func (c *SoftCanvas) DrawCircle(center Offset, radius float64, paint Paint) {
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.finish(paint)
}

func (c *SoftCanvas) DrawLine(start, end Offset, paint Paint) {
	c.dc.DrawLine(start.X, start.Y, end.X, end.Y)
	c.dc.SetColor(paint.Color.NRGBA())
	width := paint.StrokeWidth
	if width <= 0 {
		width = 1
	}
	c.dc.SetLineWidth(width)
	c.dc.Stroke()
}

func (c *SoftCanvas) DrawImage(img image.Image, position Offset) {
	if img == nil {
		return
	}
	c.dc.DrawImage(img, int(math.Round(position.X)), int(math.Round(position.Y)))
}

// DrawImageRect scales the srcRect region of img into dstRect. The region
// is resampled with ApproxBiLinear into a dst-sized buffer first, then
// composited under the current transform and clip.
func (c *SoftCanvas) DrawImageRect(img image.Image, srcRect, dstRect Rect) {
	if img == nil || srcRect.IsEmpty() || dstRect.IsEmpty() {
		return
	}
	bounds := img.Bounds()
	src := image.Rect(
		bounds.Min.X+int(srcRect.Left),
		bounds.Min.Y+int(srcRect.Top),
		bounds.Min.X+int(math.Ceil(srcRect.Right)),
		bounds.Min.Y+int(math.Ceil(srcRect.Bottom)),
	).Intersect(bounds)
	if src.Empty() {
		return
	}
	dstW := int(math.Ceil(dstRect.Width()))
	dstH := int(math.Ceil(dstRect.Height()))
	if dstW < 1 || dstH < 1 {
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, src, xdraw.Over, nil)
	c.dc.DrawImage(scaled, int(math.Round(dstRect.Left)), int(math.Round(dstRect.Top)))
}

func (c *SoftCanvas) Size() Size {
	return c.size
}

func (c *SoftCanvas) finish(paint Paint) {
	c.dc.SetColor(paint.Color.NRGBA())
	if paint.Style == PaintStroke {
		width := paint.StrokeWidth
		if width <= 0 {
			width = 1
		}
		c.dc.SetLineWidth(width)
		c.dc.Stroke()
		return
	}
	c.dc.Fill()
}
