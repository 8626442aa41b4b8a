package scene

import "github.com/go-drift/snapshot/pkg/graphics"

// Axis selects the main direction of a Flex.
type Axis int

const (
	// AxisVertical stacks children top to bottom. Zero value.
	AxisVertical Axis = iota
	// AxisHorizontal stacks children left to right.
	AxisHorizontal
)

// Flex stacks children along one axis with optional spacing, centering
// them on the cross axis. Enough layout to compose marker icons from
// boxes and images; it is not a general flex implementation.
type Flex struct {
	BaseNode
	Axis     Axis
	Spacing  float64
	Children []Node

	offsets []graphics.Offset
}

// Column stacks children vertically.
func Column(children ...Node) *Flex {
	f := &Flex{Axis: AxisVertical, Children: children}
	f.SetSelf(f)
	return f
}

// Row stacks children horizontally.
func Row(children ...Node) *Flex {
	f := &Flex{Axis: AxisHorizontal, Children: children}
	f.SetSelf(f)
	return f
}

func (f *Flex) Layout(constraints Constraints) graphics.Size {
	loose := Loose(graphics.Size{Width: constraints.MaxWidth, Height: constraints.MaxHeight})
	var main, cross float64
	sizes := make([]graphics.Size, len(f.Children))
	for i, child := range f.Children {
		size := child.Layout(loose)
		sizes[i] = size
		if f.Axis == AxisVertical {
			main += size.Height
			cross = max(cross, size.Width)
		} else {
			main += size.Width
			cross = max(cross, size.Height)
		}
	}
	if len(f.Children) > 1 {
		main += f.Spacing * float64(len(f.Children)-1)
	}

	var size graphics.Size
	if f.Axis == AxisVertical {
		size = constraints.Constrain(graphics.Size{Width: cross, Height: main})
	} else {
		size = constraints.Constrain(graphics.Size{Width: main, Height: cross})
	}

	f.offsets = make([]graphics.Offset, len(f.Children))
	var pos float64
	for i, childSize := range sizes {
		if f.Axis == AxisVertical {
			f.offsets[i] = graphics.Offset{
				X: (size.Width - childSize.Width) / 2,
				Y: pos,
			}
			pos += childSize.Height + f.Spacing
		} else {
			f.offsets[i] = graphics.Offset{
				X: pos,
				Y: (size.Height - childSize.Height) / 2,
			}
			pos += childSize.Width + f.Spacing
		}
	}

	f.SetSize(size)
	return size
}

func (f *Flex) Paint(ctx *PaintContext) {
	for i, child := range f.Children {
		ctx.PaintChild(child, f.offsets[i])
	}
}

func (f *Flex) VisitChildren(visit func(Node) bool) bool {
	for _, child := range f.Children {
		if !visit(child) {
			return false
		}
	}
	return true
}
