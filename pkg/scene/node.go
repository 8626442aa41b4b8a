// Package scene provides the minimal render tree the off-screen rasterizer
// draws: boxes with decorations, images, and axis stacking. Nodes handle
// layout and painting; widget-level concerns (state, gestures, theming)
// are outside this package.
package scene

import "github.com/go-drift/snapshot/pkg/graphics"

// Node is one node in a scene tree.
type Node interface {
	// Layout sizes the node within the constraints and returns the size.
	Layout(constraints Constraints) graphics.Size
	// Size returns the size picked by the last Layout call.
	Size() graphics.Size
	// Paint draws the node at the canvas origin.
	Paint(ctx *PaintContext)
	// VisitChildren calls visit for each child, stopping early when visit
	// returns false. Reports whether the walk ran to completion.
	VisitChildren(visit func(Node) bool) bool
}

// ImageBearer is implemented by nodes that draw a decoded image directly.
type ImageBearer interface {
	// PendingImage reports whether the node's image has not resolved yet.
	PendingImage() bool
}

// DecorationImageBearer is implemented by nodes whose background decoration
// references an image. Decoration images cannot be definitively checked for
// resolution, so their presence alone counts as pending.
type DecorationImageBearer interface {
	HasDecorationImage() bool
}

// attachable binds a node to a pipeline owner for dirty tracking.
type attachable interface {
	Attach(owner *PipelineOwner)
	Detach()
}

// PaintContext provides the canvas for painting nodes.
type PaintContext struct {
	Canvas graphics.Canvas
}

// PaintChild paints a child node at the given offset.
func (p *PaintContext) PaintChild(child Node, offset graphics.Offset) {
	if child == nil {
		return
	}
	p.Canvas.Save()
	p.Canvas.Translate(offset.X, offset.Y)
	child.Paint(p)
	p.Canvas.Restore()
}

// BaseNode provides size bookkeeping and owner attachment for nodes.
// Embedding types call SetSelf once after construction so dirty marks
// reach the pipeline owner with the right identity.
type BaseNode struct {
	size  graphics.Size
	owner *PipelineOwner
	self  Node
}

// SetSelf records the embedding node for owner scheduling.
func (b *BaseNode) SetSelf(self Node) {
	b.self = self
}

// Size returns the size picked by the last layout.
func (b *BaseNode) Size() graphics.Size {
	return b.size
}

// SetSize records the node size during layout.
func (b *BaseNode) SetSize(size graphics.Size) {
	b.size = size
}

// Attach binds the node to a pipeline owner.
func (b *BaseNode) Attach(owner *PipelineOwner) {
	b.owner = owner
}

// Detach releases the owner binding.
func (b *BaseNode) Detach() {
	b.owner = nil
}

// MarkNeedsPaint schedules the node for repainting with its owner.
func (b *BaseNode) MarkNeedsPaint() {
	if b.owner != nil && b.self != nil {
		b.owner.SchedulePaint(b.self)
	}
}

// Attach walks the tree and binds every node to the pipeline owner.
func Attach(root Node, owner *PipelineOwner) {
	if root == nil {
		return
	}
	if a, ok := root.(attachable); ok {
		a.Attach(owner)
	}
	root.VisitChildren(func(child Node) bool {
		Attach(child, owner)
		return true
	})
}

// Detach walks the tree and releases every node's owner binding.
func Detach(root Node) {
	if root == nil {
		return
	}
	if a, ok := root.(attachable); ok {
		a.Detach()
	}
	root.VisitChildren(func(child Node) bool {
		Detach(child)
		return true
	})
}

// HasPendingImages reports whether any image-bearing node under root is
// still waiting for its image. The walk is depth-first and short-circuits
// on the first pending node. The tree is not mutated.
func HasPendingImages(root Node) bool {
	if root == nil {
		return false
	}
	if b, ok := root.(ImageBearer); ok && b.PendingImage() {
		return true
	}
	if d, ok := root.(DecorationImageBearer); ok && d.HasDecorationImage() {
		return true
	}
	return !root.VisitChildren(func(child Node) bool {
		return !HasPendingImages(child)
	})
}
