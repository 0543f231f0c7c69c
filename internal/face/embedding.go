package face

import (
	"math"

	"github.com/kozaktomas/facetrace/internal/imaging"
)

const (
	embeddingSize = 64 // faces are resampled to embeddingSize x embeddingSize
	histogramBins = 64
	gradientDim   = 64
	textureDim    = 64
	spatialDim    = 320
	patchSize     = 8
	gridCells     = 4
	gradEpsilon   = 1e-8
)

// Extract computes the 512-dimensional appearance embedding of a grayscale
// face region. The vector concatenates four deterministic feature blocks:
// a 64-bin intensity histogram, 64 gradient-magnitude samples, 64 patch
// variances, and 320 grid statistics, zero-padded to exactly EmbeddingDim.
// The same region bytes always produce a bit-identical vector.
func Extract(region *imaging.Gray) []float32 {
	resized := region.Resize(embeddingSize, embeddingSize)

	features := make([]float64, 0, EmbeddingDim)
	features = append(features, histogramFeatures(resized)...)
	features = append(features, gradientFeatures(resized)...)
	features = append(features, textureFeatures(resized)...)
	features = append(features, spatialFeatures(resized)...)

	for len(features) < EmbeddingDim {
		features = append(features, 0)
	}
	features = features[:EmbeddingDim]

	out := make([]float32, EmbeddingDim)
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[i] = float32(v)
	}
	return out
}

// histogramFeatures returns the 64-bin intensity histogram, each bin count
// divided by 255.
func histogramFeatures(g *imaging.Gray) []float64 {
	var bins [histogramBins]float64
	for _, v := range g.Pix {
		bins[int(v)*histogramBins/256]++
	}

	out := make([]float64, histogramBins)
	for i, c := range bins {
		out[i] = c / 255.0
	}
	return out
}

// gradientFeatures computes the Sobel gradient magnitude map, normalizes it
// by its own maximum, and samples the first 64 values of the flattened map.
// Already-enrolled embeddings depend on this exact layout, so the sampling
// must never change.
func gradientFeatures(g *imaging.Gray) []float64 {
	mag := make([]float64, g.Width*g.Height)
	maxMag := 0.0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			gx, gy := sobelAt(g, x, y)
			m := math.Sqrt(gx*gx + gy*gy)
			mag[y*g.Width+x] = m
			if m > maxMag {
				maxMag = m
			}
		}
	}

	out := make([]float64, gradientDim)
	for i := range out {
		if i < len(mag) {
			out[i] = mag[i] / (maxMag + gradEpsilon)
		}
	}
	return out
}

// sobelAt evaluates the 3x3 Sobel kernels at (x, y) with reflected borders.
func sobelAt(g *imaging.Gray, x, y int) (float64, float64) {
	p := func(dx, dy int) float64 {
		return float64(g.At(reflect(x+dx, g.Width), reflect(y+dy, g.Height)))
	}

	gx := -p(-1, -1) + p(1, -1) +
		-2*p(-1, 0) + 2*p(1, 0) +
		-p(-1, 1) + p(1, 1)
	gy := -p(-1, -1) - 2*p(0, -1) - p(1, -1) +
		p(-1, 1) + 2*p(0, 1) + p(1, 1)
	return gx, gy
}

// reflect mirrors an out-of-range coordinate back into [0, n)
// (border handling equivalent to OpenCV's reflect-101).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*n - i - 2
	}
	return i
}

// textureFeatures partitions the region into 8x8 patches and reports the
// intensity variance of each full patch divided by 255, up to 64 values.
func textureFeatures(g *imaging.Gray) []float64 {
	out := make([]float64, 0, textureDim)
	for py := 0; py+patchSize <= g.Height && len(out) < textureDim; py += patchSize {
		for px := 0; px+patchSize <= g.Width && len(out) < textureDim; px += patchSize {
			out = append(out, patchVariance(g, px, py)/255.0)
		}
	}
	for len(out) < textureDim {
		out = append(out, 0)
	}
	return out
}

// patchVariance computes the population variance of one 8x8 patch.
func patchVariance(g *imaging.Gray, px, py int) float64 {
	var sum float64
	for y := py; y < py+patchSize; y++ {
		for x := px; x < px+patchSize; x++ {
			sum += float64(g.At(x, y))
		}
	}
	n := float64(patchSize * patchSize)
	mean := sum / n

	var sq float64
	for y := py; y < py+patchSize; y++ {
		for x := px; x < px+patchSize; x++ {
			d := float64(g.At(x, y)) - mean
			sq += d * d
		}
	}
	return sq / n
}

// spatialFeatures splits the region into a 4x4 grid and reports mean/255
// and standard deviation/255 per cell (32 values), zero-padded to 320.
func spatialFeatures(g *imaging.Gray) []float64 {
	out := make([]float64, 0, spatialDim)
	for i := 0; i < gridCells; i++ {
		for j := 0; j < gridCells; j++ {
			y1, y2 := i*g.Height/gridCells, (i+1)*g.Height/gridCells
			x1, x2 := j*g.Width/gridCells, (j+1)*g.Width/gridCells
			if y2 <= y1 || x2 <= x1 {
				continue
			}
			mean, std := cellStats(g, x1, y1, x2, y2)
			out = append(out, mean/255.0, std/255.0)
		}
	}
	for len(out) < spatialDim {
		out = append(out, 0)
	}
	return out[:spatialDim]
}

// cellStats computes the mean and population standard deviation of a cell.
func cellStats(g *imaging.Gray, x1, y1, x2, y2 int) (float64, float64) {
	n := float64((x2 - x1) * (y2 - y1))
	var sum float64
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			sum += float64(g.At(x, y))
		}
	}
	mean := sum / n

	var sq float64
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			d := float64(g.At(x, y)) - mean
			sq += d * d
		}
	}
	return mean, math.Sqrt(sq / n)
}
