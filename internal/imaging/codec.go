// Package imaging decodes camera frame payloads and prepares grayscale
// buffers for face detection and feature extraction.
package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrDecode indicates a malformed or unsupported image payload.
var ErrDecode = errors.New("invalid image data")

// Decode converts a base64 image payload into a normalized RGBA buffer.
// Data-URL prefixes ("data:image/jpeg;base64,....") are stripped before
// decoding. The returned buffer is owned by the caller and never mutated
// by the pipeline.
func Decode(payload string) (*image.NRGBA, error) {
	// Remove data URL prefix if present.
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	payload = strings.TrimSpace(payload)

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		// Some clients send unpadded base64.
		raw, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	return toNRGBA(img), nil
}

// toNRGBA normalizes any decoded image to 8-bit RGBA samples.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) {
		return n
	}
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return dst
}
