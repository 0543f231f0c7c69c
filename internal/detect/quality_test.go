package detect

import (
	"math"
	"testing"

	"github.com/kozaktomas/facetrace/internal/face"
)

func TestScoreQuality(t *testing.T) {
	tests := []struct {
		name     string
		box      face.Box
		expected float64
	}{
		{
			name:     "optimal face",
			box:      face.Box{Top: 0, Left: 0, Bottom: 100, Right: 80},
			expected: 1.0, // area 8000, aspect 0.8
		},
		{
			name:     "zero height",
			box:      face.Box{Top: 10, Left: 0, Bottom: 10, Right: 80},
			expected: 0,
		},
		{
			name:     "zero width",
			box:      face.Box{Top: 0, Left: 10, Bottom: 100, Right: 10},
			expected: 0,
		},
		{
			name: "small square face",
			// area 1600 -> size 0.2, aspect 1.0 -> 1 - 0.2/0.8 = 0.75
			box:      face.Box{Top: 0, Left: 0, Bottom: 40, Right: 40},
			expected: (0.2 + 0.75) / 2,
		},
		{
			name: "large wide face",
			// area 40000 -> size capped at 1, aspect 2.0 -> clamped to 0
			box:      face.Box{Top: 0, Left: 0, Bottom: 100, Right: 200},
			expected: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreQuality(tt.box)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("ScoreQuality(%v) = %v, want %v", tt.box, result, tt.expected)
			}
		})
	}
}

func TestScoreQualityBounded(t *testing.T) {
	boxes := []face.Box{
		{Top: 0, Left: 0, Bottom: 1, Right: 1},
		{Top: 0, Left: 0, Bottom: 1000, Right: 1000},
		{Top: 0, Left: 0, Bottom: 10, Right: 500},
		{Top: 0, Left: 0, Bottom: 500, Right: 10},
	}
	for _, box := range boxes {
		score := ScoreQuality(box)
		if score < 0 || score > 1 {
			t.Errorf("ScoreQuality(%v) = %v, out of [0, 1]", box, score)
		}
	}
}

func TestFilterByQuality(t *testing.T) {
	boxes := []face.Box{
		{Top: 0, Left: 0, Bottom: 100, Right: 80}, // score 1.0
		{Top: 0, Left: 0, Bottom: 40, Right: 40},  // score 0.475
		{Top: 10, Left: 0, Bottom: 10, Right: 80}, // score 0
	}

	accepted := FilterByQuality(boxes, DefaultMinQuality)
	if len(accepted) != 1 {
		t.Fatalf("accepted %d boxes, want 1", len(accepted))
	}
	if accepted[0].Box != boxes[0] {
		t.Errorf("accepted box = %v, want %v", accepted[0].Box, boxes[0])
	}
	if accepted[0].QualityScore != 1.0 {
		t.Errorf("quality score = %v, want 1.0", accepted[0].QualityScore)
	}
}

func TestFilterByQualityKeepsBoundary(t *testing.T) {
	// A score exactly at the threshold passes.
	box := face.Box{Top: 0, Left: 0, Bottom: 100, Right: 80}
	accepted := FilterByQuality([]face.Box{box}, 1.0)
	if len(accepted) != 1 {
		t.Errorf("boundary score rejected, want accepted")
	}
}

func TestFilterByQualityEmpty(t *testing.T) {
	if got := FilterByQuality(nil, DefaultMinQuality); len(got) != 0 {
		t.Errorf("FilterByQuality(nil) = %v, want empty", got)
	}
}
