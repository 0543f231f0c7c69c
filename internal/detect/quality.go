package detect

import (
	"math"

	"github.com/kozaktomas/facetrace/internal/face"
)

const (
	// OptimalArea is the face area considered ideal (typical 80x100 face).
	OptimalArea = 80 * 100
	// OptimalAspect is the ideal width/height ratio for a frontal face.
	OptimalAspect = 0.8
	// DefaultMinQuality is the acceptance threshold for quality scores.
	DefaultMinQuality = 0.6
)

// ScoreQuality rates a face box in [0, 1] by combining size and aspect
// ratio quality with equal weight. A zero-height box scores 0 and is
// rejected downstream rather than causing a division error.
func ScoreQuality(box face.Box) float64 {
	if box.Height() <= 0 || box.Width() <= 0 {
		return 0
	}

	sizeQuality := math.Min(1.0, float64(box.Area())/OptimalArea)

	aspect := float64(box.Width()) / float64(box.Height())
	aspectQuality := 1.0 - math.Abs(aspect-OptimalAspect)/OptimalAspect
	aspectQuality = math.Max(0.0, math.Min(1.0, aspectQuality))

	return (sizeQuality + aspectQuality) / 2.0
}

// FilterByQuality scores raw boxes and keeps those at or above minQuality,
// producing partially filled faces (embedding and track fields come later).
// Rejected boxes are dropped silently.
func FilterByQuality(boxes []face.Box, minQuality float64) []face.DetectedFace {
	var accepted []face.DetectedFace
	for _, box := range boxes {
		score := ScoreQuality(box)
		if score < minQuality {
			continue
		}
		accepted = append(accepted, face.DetectedFace{
			Box:          box,
			QualityScore: score,
		})
	}
	return accepted
}
