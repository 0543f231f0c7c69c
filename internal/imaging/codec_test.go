package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
)

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("jpeg encode failed: %v", err)
	}
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode failed: %v", err)
	}
	return buf.Bytes()
}

func solidImage(width, height int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecodeJPEG(t *testing.T) {
	data := encodeJPEG(t, solidImage(32, 24, color.White))
	img, err := Decode(base64.StdEncoding.EncodeToString(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 32 || img.Bounds().Dy() != 24 {
		t.Errorf("decoded size = %dx%d, want 32x24", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecodePNG(t *testing.T) {
	data := encodePNG(t, solidImage(16, 16, color.Black))
	img, err := Decode(base64.StdEncoding.EncodeToString(data))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Errorf("decoded size = %dx%d, want 16x16", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestDecodeDataURLPrefix(t *testing.T) {
	data := encodeJPEG(t, solidImage(8, 8, color.White))
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data)
	if _, err := Decode(payload); err != nil {
		t.Fatalf("Decode with data URL prefix failed: %v", err)
	}
}

func TestDecodeUnpaddedBase64(t *testing.T) {
	data := encodePNG(t, solidImage(8, 8, color.White))
	payload := strings.TrimRight(base64.StdEncoding.EncodeToString(data), "=")
	if _, err := Decode(payload); err != nil {
		t.Fatalf("Decode with unpadded base64 failed: %v", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not base64", "!!!not-base64!!!"},
		{"base64 but not an image", base64.StdEncoding.EncodeToString([]byte("hello world"))},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.payload)
			if err == nil {
				t.Fatal("Decode should have failed")
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("error = %v, want ErrDecode", err)
			}
		})
	}
}
