// PNG round-trip probe.
//
// The functional half of the original libpng check: build a small test
// image, encode it to PNG, decode it back, and compare every pixel. The
// gradient is opaque because PNG stores straight alpha; premultiplied
// conversion is only lossless at alpha 255, and the comparison must be
// exact.
package linkprobe

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
)

// ImageResult reports a completed PNG round trip.
type ImageResult struct {
	Width      int // Test image width in pixels
	Height     int // Test image height in pixels
	Pixels     int // Pixels compared
	EncodedLen int // PNG size in bytes
}

// ImageRoundTrip encodes a deterministic RGBA gradient to PNG, decodes it,
// and verifies every pixel survived. Encoding failures wrap ErrCompress and
// decoding failures ErrDecompress, mirroring the codec probes; a pixel
// difference is ErrMismatch.
func ImageRoundTrip() (*ImageResult, error) {
	const width, height = 16, 16

	src := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			src.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 16),
				G: uint8(y * 16),
				B: uint8((x + y) * 8),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return nil, fmt.Errorf("%w: png: %w", ErrCompress, err)
	}

	decoded, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("%w: png: %w", ErrDecompress, err)
	}

	if got, want := decoded.Bounds(), src.Bounds(); got != want {
		return nil, fmt.Errorf("%w: png: bounds %v, want %v", ErrMismatch, got, want)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			wr, wg, wb, wa := src.At(x, y).RGBA()
			gr, gg, gb, ga := decoded.At(x, y).RGBA()
			if wr != gr || wg != gg || wb != gb || wa != ga {
				return nil, fmt.Errorf("%w: png: pixel (%d,%d)", ErrMismatch, x, y)
			}
		}
	}

	return &ImageResult{
		Width:      width,
		Height:     height,
		Pixels:     width * height,
		EncodedLen: buf.Len(),
	}, nil
}
