package face

import (
	"math"
	"testing"
)

func TestIoU(t *testing.T) {
	tests := []struct {
		name     string
		a        Box
		b        Box
		expected float64
	}{
		{
			name:     "identical boxes",
			a:        Box{Top: 0, Left: 0, Bottom: 10, Right: 10},
			b:        Box{Top: 0, Left: 0, Bottom: 10, Right: 10},
			expected: 1.0,
		},
		{
			name:     "no overlap",
			a:        Box{Top: 0, Left: 0, Bottom: 10, Right: 10},
			b:        Box{Top: 20, Left: 20, Bottom: 30, Right: 30},
			expected: 0.0,
		},
		{
			name:     "touching edges",
			a:        Box{Top: 0, Left: 0, Bottom: 10, Right: 10},
			b:        Box{Top: 0, Left: 10, Bottom: 10, Right: 20},
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			a:        Box{Top: 0, Left: 0, Bottom: 10, Right: 10},
			b:        Box{Top: 5, Left: 5, Bottom: 15, Right: 15},
			expected: 25.0 / 175.0, // intersection=25, union=100+100-25=175
		},
		{
			name:     "one inside other",
			a:        Box{Top: 0, Left: 0, Bottom: 20, Right: 20},
			b:        Box{Top: 5, Left: 5, Bottom: 15, Right: 15},
			expected: 100.0 / 400.0, // intersection=100, union=400 (larger box)
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IoU(tt.a, tt.b)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("IoU(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestIoUSymmetric(t *testing.T) {
	a := Box{Top: 2, Left: 3, Bottom: 40, Right: 50}
	b := Box{Top: 10, Left: 20, Bottom: 60, Right: 70}
	if IoU(a, b) != IoU(b, a) {
		t.Errorf("IoU not symmetric: %v vs %v", IoU(a, b), IoU(b, a))
	}
}

func TestBoxDimensions(t *testing.T) {
	b := Box{Top: 10, Left: 20, Bottom: 110, Right: 100}
	if b.Width() != 80 {
		t.Errorf("Width() = %d, want 80", b.Width())
	}
	if b.Height() != 100 {
		t.Errorf("Height() = %d, want 100", b.Height())
	}
	if b.Area() != 8000 {
		t.Errorf("Area() = %d, want 8000", b.Area())
	}
}
