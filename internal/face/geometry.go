package face

// IoU calculates Intersection over Union between two bounding boxes.
// Non-overlapping boxes yield 0; a box against itself yields 1.
func IoU(a, b Box) float64 {
	x1 := max(a.Left, b.Left)
	y1 := max(a.Top, b.Top)
	x2 := min(a.Right, b.Right)
	y2 := min(a.Bottom, b.Bottom)

	if x2 <= x1 || y2 <= y1 {
		return 0 // No intersection
	}

	intersection := float64((x2 - x1) * (y2 - y1))
	union := float64(a.Area()+b.Area()) - intersection
	if union <= 0 {
		return 0
	}

	return intersection / union
}
