package scene

// PipelineOwner tracks nodes that need painting between passes.
//
// The rasterizer attaches an isolated tree to a fresh owner for each
// render, schedules repaints (the image-settle second pass marks the root
// here), and resets the owner during teardown. Scheduling is deduplicated
// so a node marked twice repaints once.
type PipelineOwner struct {
	dirtyPaint map[Node]struct{}
	needsPaint bool
}

// SchedulePaint marks a node as needing paint.
func (p *PipelineOwner) SchedulePaint(node Node) {
	if node == nil {
		return
	}
	if p.dirtyPaint == nil {
		p.dirtyPaint = make(map[Node]struct{})
	}
	if _, exists := p.dirtyPaint[node]; exists {
		return
	}
	p.dirtyPaint[node] = struct{}{}
	p.needsPaint = true
}

// NeedsPaint reports if any nodes need paint.
func (p *PipelineOwner) NeedsPaint() bool {
	return p.needsPaint
}

// FlushPaint returns the nodes scheduled for paint and clears the state
// for the next pass.
func (p *PipelineOwner) FlushPaint() []Node {
	if !p.needsPaint || len(p.dirtyPaint) == 0 {
		p.dirtyPaint = nil
		p.needsPaint = false
		return nil
	}
	dirty := make([]Node, 0, len(p.dirtyPaint))
	for node := range p.dirtyPaint {
		dirty = append(dirty, node)
	}
	p.dirtyPaint = nil
	p.needsPaint = false
	return dirty
}

// Reset drops all scheduled work. Called during teardown of an isolated
// render pass.
func (p *PipelineOwner) Reset() {
	p.dirtyPaint = nil
	p.needsPaint = false
}
