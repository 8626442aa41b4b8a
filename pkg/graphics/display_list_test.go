package graphics_test

import (
	"image"
	"testing"

	"github.com/go-drift/snapshot/pkg/graphics"
)

// countingCanvas records which operations were replayed onto it.
type countingCanvas struct {
	calls []string
	size  graphics.Size
}

func (c *countingCanvas) record(name string) { c.calls = append(c.calls, name) }

func (c *countingCanvas) Save()                    { c.record("save") }
func (c *countingCanvas) Restore()                 { c.record("restore") }
func (c *countingCanvas) Translate(dx, dy float64) { c.record("translate") }
func (c *countingCanvas) Scale(sx, sy float64)     { c.record("scale") }
func (c *countingCanvas) ClipRect(graphics.Rect)   { c.record("clipRect") }
func (c *countingCanvas) Clear(graphics.Color)     { c.record("clear") }
func (c *countingCanvas) DrawRect(graphics.Rect, graphics.Paint) {
	c.record("drawRect")
}
func (c *countingCanvas) DrawRRect(graphics.RRect, graphics.Paint) {
	c.record("drawRRect")
}
func (c *countingCanvas) DrawCircle(graphics.Offset, float64, graphics.Paint) {
	c.record("drawCircle")
}
func (c *countingCanvas) DrawLine(graphics.Offset, graphics.Offset, graphics.Paint) {
	c.record("drawLine")
}
func (c *countingCanvas) DrawImage(image.Image, graphics.Offset) {
	c.record("drawImage")
}
func (c *countingCanvas) DrawImageRect(image.Image, graphics.Rect, graphics.Rect) {
	c.record("drawImageRect")
}
func (c *countingCanvas) Size() graphics.Size { return c.size }

func TestPictureRecorder_Replay(t *testing.T) {
	var rec graphics.PictureRecorder
	canvas := rec.BeginRecording(graphics.Size{Width: 100, Height: 50})

	canvas.Clear(graphics.ColorWhite)
	canvas.Save()
	canvas.Translate(10, 10)
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, 20, 20), graphics.FillPaint(graphics.ColorRed))
	canvas.Restore()

	list := rec.EndRecording()
	if list.Len() != 5 {
		t.Fatalf("recorded %d ops, want 5", list.Len())
	}
	if got := list.Size(); got != (graphics.Size{Width: 100, Height: 50}) {
		t.Errorf("list size = %+v", got)
	}

	target := &countingCanvas{}
	list.Paint(target)
	want := []string{"clear", "save", "translate", "drawRect", "restore"}
	if len(target.calls) != len(want) {
		t.Fatalf("replayed %d ops, want %d", len(target.calls), len(want))
	}
	for i, name := range want {
		if target.calls[i] != name {
			t.Errorf("op %d = %s, want %s", i, target.calls[i], name)
		}
	}
}

func TestPictureRecorder_ReplayTwice(t *testing.T) {
	var rec graphics.PictureRecorder
	canvas := rec.BeginRecording(graphics.Size{Width: 10, Height: 10})
	canvas.DrawCircle(graphics.Offset{X: 5, Y: 5}, 3, graphics.FillPaint(graphics.ColorBlue))
	list := rec.EndRecording()

	a := &countingCanvas{}
	b := &countingCanvas{}
	list.Paint(a)
	list.Paint(b)
	if len(a.calls) != 1 || len(b.calls) != 1 {
		t.Error("display list must replay identically onto any canvas")
	}
}

func TestPictureRecorder_OpsAfterEndIgnored(t *testing.T) {
	var rec graphics.PictureRecorder
	canvas := rec.BeginRecording(graphics.Size{Width: 10, Height: 10})
	canvas.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), graphics.FillPaint(graphics.ColorRed))
	list := rec.EndRecording()

	canvas.DrawRect(graphics.RectFromLTWH(0, 0, 5, 5), graphics.FillPaint(graphics.ColorRed))
	if list.Len() != 1 {
		t.Errorf("ops after EndRecording leaked into the list: len = %d", list.Len())
	}
}
