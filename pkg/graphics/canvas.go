package graphics

import "image"

// PaintStyle selects between filling and stroking a shape.
type PaintStyle int

const (
	// PaintFill fills the shape interior. Zero value, the default.
	PaintFill PaintStyle = iota
	// PaintStroke strokes the shape outline at StrokeWidth.
	PaintStroke
)

// Paint describes how a shape is drawn.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float64
}

// FillPaint returns a fill paint in the given color.
func FillPaint(c Color) Paint {
	return Paint{Color: c}
}

// StrokePaint returns a stroke paint in the given color and width.
func StrokePaint(c Color, width float64) Paint {
	return Paint{Color: c, Style: PaintStroke, StrokeWidth: width}
}

// Canvas receives drawing commands from scene nodes. Implementations are a
// recording canvas (see PictureRecorder) and a software raster canvas
// (see SoftCanvas).
type Canvas interface {
	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)
	ClipRect(rect Rect)
	Clear(color Color)
	DrawRect(rect Rect, paint Paint)
	DrawRRect(rrect RRect, paint Paint)
	DrawCircle(center Offset, radius float64, paint Paint)
	DrawLine(start, end Offset, paint Paint)
	DrawImage(img image.Image, position Offset)
	// DrawImageRect draws the srcRect region of img scaled into dstRect.
	DrawImageRect(img image.Image, srcRect, dstRect Rect)
	Size() Size
}
