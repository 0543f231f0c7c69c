package imaging

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Gray is a single-channel 8-bit pixel buffer in row-major order.
type Gray struct {
	Pix    []uint8
	Width  int
	Height int
}

// NewGray allocates a zeroed grayscale buffer.
func NewGray(width, height int) *Gray {
	return &Gray{
		Pix:    make([]uint8, width*height),
		Width:  width,
		Height: height,
	}
}

// FromImage converts an RGBA buffer to grayscale using the ITU-R BT.601
// luma formula, matching the fingerprinting conversion used elsewhere.
func FromImage(img *image.NRGBA) *Gray {
	bounds := img.Bounds()
	g := NewGray(bounds.Dx(), bounds.Dy())
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			i := img.PixOffset(x, y)
			r := float64(img.Pix[i])
			gr := float64(img.Pix[i+1])
			b := float64(img.Pix[i+2])
			luma := 0.299*r + 0.587*gr + 0.114*b
			g.Pix[y*g.Width+x] = uint8(math.Round(math.Min(luma, 255)))
		}
	}
	return g
}

// At returns the sample at (x, y). Out-of-range coordinates return 0.
func (g *Gray) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Pix[y*g.Width+x]
}

// Crop returns a copy of the region [left, right) x [top, bottom),
// clamped to the buffer bounds.
func (g *Gray) Crop(top, left, bottom, right int) *Gray {
	top = clamp(top, 0, g.Height)
	bottom = clamp(bottom, 0, g.Height)
	left = clamp(left, 0, g.Width)
	right = clamp(right, 0, g.Width)
	if bottom < top {
		bottom = top
	}
	if right < left {
		right = left
	}

	out := NewGray(right-left, bottom-top)
	for y := top; y < bottom; y++ {
		copy(out.Pix[(y-top)*out.Width:(y-top+1)*out.Width], g.Pix[y*g.Width+left:y*g.Width+right])
	}
	return out
}

// Equalize applies histogram equalization and returns a new buffer.
// This normalizes lighting before cascade detection.
func (g *Gray) Equalize() *Gray {
	total := len(g.Pix)
	out := NewGray(g.Width, g.Height)
	if total == 0 {
		return out
	}

	var hist [256]int
	for _, v := range g.Pix {
		hist[v]++
	}

	// Cumulative distribution, scaled so the first occupied bin maps to 0
	// and the last to 255.
	var cdf [256]int
	sum := 0
	for i, c := range hist {
		sum += c
		cdf[i] = sum
	}
	cdfMin := 0
	for _, c := range cdf {
		if c > 0 {
			cdfMin = c
			break
		}
	}

	var lut [256]uint8
	denom := total - cdfMin
	if denom <= 0 {
		// Flat image, identity mapping.
		for i := range lut {
			lut[i] = uint8(i)
		}
	} else {
		for i := range lut {
			v := math.Round(float64(cdf[i]-cdfMin) / float64(denom) * 255)
			lut[i] = uint8(clamp(int(v), 0, 255))
		}
	}

	for i, v := range g.Pix {
		out.Pix[i] = lut[v]
	}
	return out
}

// Resize scales the buffer to the given dimensions using bilinear
// interpolation. The operation is deterministic.
func (g *Gray) Resize(width, height int) *Gray {
	src := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(src.Pix, g.Pix)

	dst := image.NewGray(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	out := NewGray(width, height)
	copy(out.Pix, dst.Pix)
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
