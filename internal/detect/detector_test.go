package detect

import (
	"testing"

	pigo "github.com/esimov/pigo/core"

	"github.com/kozaktomas/facetrace/internal/face"
)

func TestDetectionToBox(t *testing.T) {
	tests := []struct {
		name     string
		det      pigo.Detection
		width    int
		height   int
		expected face.Box
		ok       bool
	}{
		{
			name:     "centered detection",
			det:      pigo.Detection{Row: 100, Col: 100, Scale: 80},
			width:    200,
			height:   200,
			expected: face.Box{Top: 60, Left: 60, Bottom: 140, Right: 140},
			ok:       true,
		},
		{
			name:     "clamped to top left corner",
			det:      pigo.Detection{Row: 10, Col: 10, Scale: 80},
			width:    200,
			height:   200,
			expected: face.Box{Top: 0, Left: 0, Bottom: 50, Right: 50},
			ok:       true,
		},
		{
			name:     "clamped to bottom right corner",
			det:      pigo.Detection{Row: 195, Col: 195, Scale: 80},
			width:    200,
			height:   200,
			expected: face.Box{Top: 155, Left: 155, Bottom: 200, Right: 200},
			ok:       true,
		},
		{
			name:   "fully outside the image",
			det:    pigo.Detection{Row: 500, Col: 500, Scale: 80},
			width:  200,
			height: 200,
			ok:     false,
		},
		{
			name:   "zero scale",
			det:    pigo.Detection{Row: 100, Col: 100, Scale: 0},
			width:  200,
			height: 200,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, ok := detectionToBox(tt.det, tt.width, tt.height)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && box != tt.expected {
				t.Errorf("box = %v, want %v", box, tt.expected)
			}
		})
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.ScaleFactor <= 1.0 {
		t.Errorf("ScaleFactor = %v, must be > 1", p.ScaleFactor)
	}
	if p.MinSize <= 0 || p.MaxSize <= p.MinSize {
		t.Errorf("size window = [%d, %d] invalid", p.MinSize, p.MaxSize)
	}
	if p.MinQuality <= 0 {
		t.Errorf("MinQuality = %v, must be positive", p.MinQuality)
	}
}

func TestNewDetectorFromMissingFile(t *testing.T) {
	if _, err := NewDetectorFromFile("/nonexistent/cascade", DefaultParams()); err == nil {
		t.Error("missing cascade file should fail")
	}
}
