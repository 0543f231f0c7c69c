package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestFromImageLuma(t *testing.T) {
	tests := []struct {
		name     string
		c        color.NRGBA
		expected uint8
	}{
		{"black", color.NRGBA{0, 0, 0, 255}, 0},
		{"white", color.NRGBA{255, 255, 255, 255}, 255},
		{"pure red", color.NRGBA{255, 0, 0, 255}, 76},     // 0.299 * 255
		{"pure green", color.NRGBA{0, 255, 0, 255}, 150},  // 0.587 * 255
		{"pure blue", color.NRGBA{0, 0, 255, 255}, 29},    // 0.114 * 255
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					img.SetNRGBA(x, y, tt.c)
				}
			}
			g := FromImage(img)
			if got := g.At(0, 0); got != tt.expected {
				t.Errorf("luma = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestAtOutOfRange(t *testing.T) {
	g := NewGray(4, 4)
	for i := range g.Pix {
		g.Pix[i] = 200
	}

	for _, pt := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		if got := g.At(pt[0], pt[1]); got != 0 {
			t.Errorf("At(%d, %d) = %d, want 0", pt[0], pt[1], got)
		}
	}
	if got := g.At(3, 3); got != 200 {
		t.Errorf("At(3, 3) = %d, want 200", got)
	}
}

func TestCrop(t *testing.T) {
	g := NewGray(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			g.Pix[y*10+x] = uint8(y*10 + x)
		}
	}

	out := g.Crop(2, 3, 6, 8)
	if out.Width != 5 || out.Height != 4 {
		t.Fatalf("crop size = %dx%d, want 5x4", out.Width, out.Height)
	}
	if got := out.At(0, 0); got != 23 {
		t.Errorf("crop origin = %d, want 23", got)
	}
	if got := out.At(4, 3); got != 57 {
		t.Errorf("crop corner = %d, want 57", got)
	}
}

func TestCropClampsToBounds(t *testing.T) {
	g := NewGray(5, 5)

	out := g.Crop(-3, -3, 100, 100)
	if out.Width != 5 || out.Height != 5 {
		t.Errorf("clamped crop = %dx%d, want 5x5", out.Width, out.Height)
	}

	empty := g.Crop(4, 4, 2, 2)
	if empty.Width != 0 || empty.Height != 0 {
		t.Errorf("inverted crop = %dx%d, want 0x0", empty.Width, empty.Height)
	}
}

func TestEqualizeFlatImage(t *testing.T) {
	g := NewGray(8, 8)
	for i := range g.Pix {
		g.Pix[i] = 100
	}

	out := g.Equalize()
	for i, v := range out.Pix {
		if v != 100 {
			t.Fatalf("flat image pixel %d changed to %d", i, v)
		}
	}
}

func TestEqualizeSpreadsContrast(t *testing.T) {
	// Two-level image: equalization must map the levels to the extremes.
	g := NewGray(8, 8)
	for i := range g.Pix {
		if i%2 == 0 {
			g.Pix[i] = 100
		} else {
			g.Pix[i] = 110
		}
	}

	out := g.Equalize()
	var lo, hi uint8 = 255, 0
	for _, v := range out.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo != 0 || hi != 255 {
		t.Errorf("equalized range = [%d, %d], want [0, 255]", lo, hi)
	}
}

func TestResize(t *testing.T) {
	g := NewGray(10, 10)
	for i := range g.Pix {
		g.Pix[i] = 128
	}

	out := g.Resize(64, 64)
	if out.Width != 64 || out.Height != 64 {
		t.Fatalf("resized = %dx%d, want 64x64", out.Width, out.Height)
	}
	// A uniform image stays uniform under bilinear scaling.
	for i, v := range out.Pix {
		if v != 128 {
			t.Fatalf("pixel %d = %d, want 128", i, v)
		}
	}
}

func TestResizeDeterministic(t *testing.T) {
	g := NewGray(17, 23)
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 7 % 256)
	}

	a := g.Resize(64, 64)
	b := g.Resize(64, 64)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("resize not deterministic at pixel %d: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}
