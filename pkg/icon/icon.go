// Package icon holds the cacheable result of an off-screen render: encoded
// raster bytes plus the logical size and pixel ratio they were produced at.
package icon

import (
	"github.com/go-drift/snapshot/pkg/errors"
	"github.com/go-drift/snapshot/pkg/graphics"
)

// Icon is an immutable encoded raster. Icons are shared freely: the cache
// and any number of callers may hold the same instance, and nothing
// mutates it after construction. Construction does not validate; consumers
// validate at conversion time (see Descriptor).
type Icon struct {
	bytes       []byte
	logicalSize graphics.Size
	pixelRatio  float64
}

// New wraps encoded bytes with the size and ratio they were rendered at.
func New(data []byte, logicalSize graphics.Size, pixelRatio float64) *Icon {
	return &Icon{bytes: data, logicalSize: logicalSize, pixelRatio: pixelRatio}
}

// Bytes returns the encoded raster data. Callers must not modify it.
func (i *Icon) Bytes() []byte {
	return i.bytes
}

// LogicalSize returns the layout size the icon was rendered at.
func (i *Icon) LogicalSize() graphics.Size {
	return i.logicalSize
}

// PixelRatio returns the raster scale factor the icon was rendered at.
func (i *Icon) PixelRatio() float64 {
	return i.pixelRatio
}

// SizeInBytes returns the encoded length; the cache charges this against
// its byte budget.
func (i *Icon) SizeInBytes() int {
	return len(i.bytes)
}

// ScalingMode is the external consumer's bitmap scaling policy.
type ScalingMode int

const (
	// ScalingAuto lets the consumer scale the bitmap for the display.
	ScalingAuto ScalingMode = iota
	// ScalingNone disables consumer scaling. The marker contract rejects
	// this combination, so conversion fails early with a clear message.
	ScalingNone
)

// SizeMode selects how the consumer interprets the icon's dimensions.
type SizeMode int

const (
	// ModeLogicalSize tags the bitmap with explicit width and height.
	ModeLogicalSize SizeMode = iota
	// ModePixelRatio tags the bitmap with the pixel ratio only.
	ModePixelRatio
)

// Descriptor is the consumer-facing bitmap handle: encoded bytes plus
// either an explicit size or a pixel-ratio tag.
type Descriptor struct {
	Bytes      []byte
	Mode       SizeMode
	Width      float64 // set in ModeLogicalSize
	Height     float64 // set in ModeLogicalSize
	PixelRatio float64 // set in ModePixelRatio
}

// Descriptor converts the icon for the platform marker consumer.
//
// Fails with an invalid-state error when the bytes are empty, when
// scaling is ScalingNone, when ModeLogicalSize is requested with a
// non-positive dimension, or when ModePixelRatio is requested with a
// non-positive ratio.
func (i *Icon) Descriptor(mode SizeMode, scaling ScalingMode) (Descriptor, error) {
	const op = "icon.Descriptor"
	if len(i.bytes) == 0 {
		return Descriptor{}, errors.InvalidStatef(op, "icon has no encoded bytes")
	}
	if scaling == ScalingNone {
		return Descriptor{}, errors.InvalidStatef(op,
			"marker bitmaps require consumer scaling; ScalingNone is not supported")
	}
	switch mode {
	case ModeLogicalSize:
		if i.logicalSize.Width <= 0 || i.logicalSize.Height <= 0 {
			return Descriptor{}, errors.InvalidStatef(op,
				"logical size %gx%g is not positive", i.logicalSize.Width, i.logicalSize.Height)
		}
		return Descriptor{
			Bytes:  i.bytes,
			Mode:   ModeLogicalSize,
			Width:  i.logicalSize.Width,
			Height: i.logicalSize.Height,
		}, nil
	case ModePixelRatio:
		if i.pixelRatio <= 0 {
			return Descriptor{}, errors.InvalidStatef(op,
				"pixel ratio %g is not positive", i.pixelRatio)
		}
		return Descriptor{
			Bytes:      i.bytes,
			Mode:       ModePixelRatio,
			PixelRatio: i.pixelRatio,
		}, nil
	default:
		return Descriptor{}, errors.InvalidStatef(op, "unknown size mode %d", int(mode))
	}
}

// ToBitmap is a synonym of Descriptor for callers speaking the marker
// converter's vocabulary.
func (i *Icon) ToBitmap(mode SizeMode, scaling ScalingMode) (Descriptor, error) {
	return i.Descriptor(mode, scaling)
}
