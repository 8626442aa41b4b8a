package graphics

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
)

// EncodePNG encodes a captured frame into lossless compressed bytes.
// Returns an error when the encoder fails or produces no data; callers
// surface that as an internal rendering failure.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("no frame to encode")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("png encode produced no data")
	}
	return buf.Bytes(), nil
}
