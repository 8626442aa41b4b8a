package graphics_test

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/go-drift/snapshot/pkg/graphics"
)

func pixelAt(img image.Image, x, y int) (r, g, b, a uint8) {
	pr, pg, pb, pa := img.At(x, y).RGBA()
	return uint8(pr >> 8), uint8(pg >> 8), uint8(pb >> 8), uint8(pa >> 8)
}

func TestSoftCanvas_PixelDimensions(t *testing.T) {
	tests := []struct {
		name  string
		size  graphics.Size
		ratio float64
		wantW int
		wantH int
	}{
		{"ratio 1", graphics.Size{Width: 50, Height: 50}, 1.0, 50, 50},
		{"ratio 2", graphics.Size{Width: 50, Height: 50}, 2.0, 100, 100},
		{"fractional rounds up", graphics.Size{Width: 33, Height: 21}, 1.5, 50, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := graphics.NewSoftCanvas(tt.size, tt.ratio)
			bounds := c.Image().Bounds()
			if bounds.Dx() != tt.wantW || bounds.Dy() != tt.wantH {
				t.Errorf("pixel size = %dx%d, want %dx%d",
					bounds.Dx(), bounds.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSoftCanvas_FillRect(t *testing.T) {
	c := graphics.NewSoftCanvas(graphics.Size{Width: 50, Height: 50}, 1.0)
	c.DrawRect(graphics.RectFromLTWH(0, 0, 50, 50), graphics.FillPaint(graphics.ColorRed))

	r, g, b, a := pixelAt(c.Image(), 25, 25)
	if r != 255 || g != 0 || b != 0 || a != 255 {
		t.Errorf("center pixel = (%d,%d,%d,%d), want opaque red", r, g, b, a)
	}
}

func TestSoftCanvas_PixelRatioScalesDrawing(t *testing.T) {
	// A 10x10 logical rect at ratio 2 covers 20x20 device pixels.
	c := graphics.NewSoftCanvas(graphics.Size{Width: 20, Height: 20}, 2.0)
	c.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.FillPaint(graphics.ColorBlue))

	if _, _, b, _ := pixelAt(c.Image(), 15, 15); b != 255 {
		t.Error("pixel (15,15) should be inside the scaled rect")
	}
	if _, _, b, a := pixelAt(c.Image(), 30, 30); b == 255 && a == 255 {
		t.Error("pixel (30,30) should be outside the scaled rect")
	}
}

func TestSoftCanvas_ClipRect(t *testing.T) {
	c := graphics.NewSoftCanvas(graphics.Size{Width: 40, Height: 40}, 1.0)
	c.Save()
	c.ClipRect(graphics.RectFromLTWH(0, 0, 20, 20))
	c.DrawRect(graphics.RectFromLTWH(0, 0, 40, 40), graphics.FillPaint(graphics.ColorGreen))
	c.Restore()

	if _, g, _, _ := pixelAt(c.Image(), 10, 10); g != 255 {
		t.Error("pixel inside clip should be painted")
	}
	if _, g, _, _ := pixelAt(c.Image(), 30, 30); g == 255 {
		t.Error("pixel outside clip should not be painted")
	}
}

func TestSoftCanvas_TranslateRestores(t *testing.T) {
	c := graphics.NewSoftCanvas(graphics.Size{Width: 40, Height: 40}, 1.0)
	c.Save()
	c.Translate(20, 20)
	c.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.FillPaint(graphics.ColorRed))
	c.Restore()
	c.DrawRect(graphics.RectFromLTWH(0, 0, 10, 10), graphics.FillPaint(graphics.ColorBlue))

	if r, _, _, _ := pixelAt(c.Image(), 25, 25); r != 255 {
		t.Error("translated rect should cover (25,25)")
	}
	if _, _, b, _ := pixelAt(c.Image(), 5, 5); b != 255 {
		t.Error("post-restore rect should paint at the origin")
	}
}

func TestSoftCanvas_DrawImageRect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, graphics.ColorRed.NRGBA())
		}
	}

	c := graphics.NewSoftCanvas(graphics.Size{Width: 40, Height: 40}, 1.0)
	c.DrawImageRect(src, graphics.RectFromLTWH(0, 0, 4, 4), graphics.RectFromLTWH(10, 10, 20, 20))

	if r, _, _, _ := pixelAt(c.Image(), 20, 20); r != 255 {
		t.Error("scaled image should cover the destination rect center")
	}
	if _, _, _, a := pixelAt(c.Image(), 2, 2); a != 0 {
		t.Error("area outside the destination rect should stay untouched")
	}
}

func TestEncodePNG_RoundTrip(t *testing.T) {
	c := graphics.NewSoftCanvas(graphics.Size{Width: 50, Height: 50}, 1.0)
	c.Clear(graphics.ColorWhite)

	data, err := graphics.EncodePNG(c.Image())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("encoded bytes must be non-empty")
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not valid PNG: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 50 || bounds.Dy() != 50 {
		t.Errorf("decoded size = %dx%d, want 50x50", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodePNG_NilFrame(t *testing.T) {
	if _, err := graphics.EncodePNG(nil); err == nil {
		t.Fatal("encoding a nil frame must fail")
	}
}
