package scene

import "github.com/go-drift/snapshot/pkg/graphics"

// DecorationImage references an image drawn as part of a box background.
type DecorationImage struct {
	Source ImageSource
	Fit    ImageFit
}

// Decoration describes a box background, border, and optional image.
//
// Decorations paint in this order:
//  1. Background color (rounded when BorderRadius > 0)
//  2. Decoration image, covering the box
//  3. Border stroke on top
type Decoration struct {
	Color        graphics.Color
	BorderColor  graphics.Color
	BorderWidth  float64
	BorderRadius float64
	Image        *DecorationImage
}

// Box paints a decoration behind an optional child, inset by Padding.
type Box struct {
	BaseNode
	Decoration Decoration
	// Width fixes the box width when non-zero.
	Width float64
	// Height fixes the box height when non-zero.
	Height float64
	// Padding insets the child on all sides.
	Padding float64
	Child   Node

	childOffset graphics.Offset
}

// NewBox builds a box node with the given decoration.
func NewBox(decoration Decoration) *Box {
	b := &Box{Decoration: decoration}
	b.SetSelf(b)
	return b
}

// HasDecorationImage reports whether the decoration references an image.
func (b *Box) HasDecorationImage() bool {
	return b.Decoration.Image != nil
}

func (b *Box) Layout(constraints Constraints) graphics.Size {
	inner := constraints
	if b.Width > 0 || b.Height > 0 {
		fixed := graphics.Size{Width: b.Width, Height: b.Height}
		if fixed.Width <= 0 {
			fixed.Width = constraints.MaxWidth
		}
		if fixed.Height <= 0 {
			fixed.Height = constraints.MaxHeight
		}
		inner = Tight(constraints.Constrain(fixed))
	}

	size := graphics.Size{Width: inner.MaxWidth, Height: inner.MaxHeight}
	if b.Child != nil {
		childMax := graphics.Size{
			Width:  inner.MaxWidth - 2*b.Padding,
			Height: inner.MaxHeight - 2*b.Padding,
		}
		if childMax.Width < 0 {
			childMax.Width = 0
		}
		if childMax.Height < 0 {
			childMax.Height = 0
		}
		childSize := b.Child.Layout(Loose(childMax))
		b.childOffset = graphics.Offset{X: b.Padding, Y: b.Padding}
		if !inner.IsTight() {
			size = inner.Constrain(graphics.Size{
				Width:  childSize.Width + 2*b.Padding,
				Height: childSize.Height + 2*b.Padding,
			})
		}
		// Center the child in any leftover space.
		b.childOffset = graphics.Offset{
			X: (size.Width - childSize.Width) / 2,
			Y: (size.Height - childSize.Height) / 2,
		}
	} else if !inner.IsTight() {
		size = inner.Constrain(graphics.Size{
			Width:  2 * b.Padding,
			Height: 2 * b.Padding,
		})
	}
	size = constraints.Constrain(size)
	b.SetSize(size)
	return size
}

func (b *Box) Paint(ctx *PaintContext) {
	size := b.Size()
	if size.IsEmpty() {
		return
	}
	rect := graphics.RectFromSize(size)
	radius := b.Decoration.BorderRadius

	if b.Decoration.Color.Alpha() > 0 {
		paint := graphics.FillPaint(b.Decoration.Color)
		if radius > 0 {
			ctx.Canvas.DrawRRect(graphics.RRect{Rect: rect, Radius: radius}, paint)
		} else {
			ctx.Canvas.DrawRect(rect, paint)
		}
	}

	if img := b.Decoration.Image; img != nil && img.Source != nil {
		if decoded, ok := img.Source.Resolve(); ok && decoded != nil {
			bounds := decoded.Bounds()
			intrinsic := graphics.Size{
				Width:  float64(bounds.Dx()),
				Height: float64(bounds.Dy()),
			}
			if !intrinsic.IsEmpty() {
				srcRect, dstRect := fitRects(img.Fit, intrinsic, size)
				if !srcRect.IsEmpty() && !dstRect.IsEmpty() {
					ctx.Canvas.Save()
					ctx.Canvas.ClipRect(rect)
					ctx.Canvas.DrawImageRect(decoded, srcRect, dstRect)
					ctx.Canvas.Restore()
				}
			}
		}
	}

	if b.Decoration.BorderWidth > 0 && b.Decoration.BorderColor.Alpha() > 0 {
		// Stroke centered on the half-width inset so the border stays
		// inside the box.
		inset := b.Decoration.BorderWidth / 2
		paint := graphics.StrokePaint(b.Decoration.BorderColor, b.Decoration.BorderWidth)
		if radius > 0 {
			ctx.Canvas.DrawRRect(graphics.RRect{Rect: rect.Inset(inset), Radius: radius}, paint)
		} else {
			ctx.Canvas.DrawRect(rect.Inset(inset), paint)
		}
	}

	if b.Child != nil {
		ctx.PaintChild(b.Child, b.childOffset)
	}
}

func (b *Box) VisitChildren(visit func(Node) bool) bool {
	if b.Child == nil {
		return true
	}
	return visit(b.Child)
}
