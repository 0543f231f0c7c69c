// Package detect runs the cascade face detector and scores raw detections
// for acceptability.
package detect

import (
	"fmt"
	"os"

	pigo "github.com/esimov/pigo/core"

	"github.com/kozaktomas/facetrace/internal/face"
	"github.com/kozaktomas/facetrace/internal/imaging"
)

// Params are the tuned cascade parameters. The defaults favor precision
// over recall: conservative scale stepping, a high cluster-quality cutoff,
// and a 50-300 px size window.
type Params struct {
	ScaleFactor   float64 // multi-scale step between cascade runs
	ShiftFactor   float64 // detection window shift as a fraction of size
	MinSize       int     // smallest accepted face in pixels
	MaxSize       int     // largest accepted face in pixels
	MinQuality    float32 // cluster quality cutoff (vote-count analogue)
	OverlapThresh float64 // IoU threshold for clustering raw detections
}

// DefaultParams returns the tuned production parameters.
func DefaultParams() Params {
	return Params{
		ScaleFactor:   1.05,
		ShiftFactor:   0.1,
		MinSize:       50,
		MaxSize:       300,
		MinQuality:    8.0,
		OverlapThresh: 0.2,
	}
}

// Detector wraps an unpacked pigo cascade classifier. Detection is
// deterministic: the same buffer and parameters always produce the same
// box set.
type Detector struct {
	classifier *pigo.Pigo
	params     Params
}

// NewDetector unpacks a binary cascade model.
func NewDetector(cascade []byte, params Params) (*Detector, error) {
	classifier, err := pigo.NewPigo().Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("unpacking cascade model: %w", err)
	}
	return &Detector{classifier: classifier, params: params}, nil
}

// NewDetectorFromFile loads the cascade model from disk.
func NewDetectorFromFile(path string, params Params) (*Detector, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cascade model %s: %w", path, err)
	}
	return NewDetector(cascade, params)
}

// Detect runs the cascade over an equalized grayscale buffer and returns
// the clustered face boxes. No faces is an empty slice, never an error.
func (d *Detector) Detect(g *imaging.Gray) []face.Box {
	if g.Width == 0 || g.Height == 0 {
		return nil
	}

	cParams := pigo.CascadeParams{
		MinSize:     d.params.MinSize,
		MaxSize:     d.params.MaxSize,
		ShiftFactor: d.params.ShiftFactor,
		ScaleFactor: d.params.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: g.Pix,
			Rows:   g.Height,
			Cols:   g.Width,
			Dim:    g.Width,
		},
	}

	dets := d.classifier.RunCascade(cParams, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.params.OverlapThresh)

	var boxes []face.Box
	for _, det := range dets {
		if det.Q < d.params.MinQuality {
			continue
		}
		if box, ok := detectionToBox(det, g.Width, g.Height); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// detectionToBox converts a centered pigo detection into a pixel bounding
// box clamped to the image. Degenerate boxes are dropped.
func detectionToBox(det pigo.Detection, width, height int) (face.Box, bool) {
	half := det.Scale / 2
	box := face.Box{
		Top:    det.Row - half,
		Left:   det.Col - half,
		Bottom: det.Row - half + det.Scale,
		Right:  det.Col - half + det.Scale,
	}

	if box.Top < 0 {
		box.Top = 0
	}
	if box.Left < 0 {
		box.Left = 0
	}
	if box.Bottom > height {
		box.Bottom = height
	}
	if box.Right > width {
		box.Right = width
	}

	if box.Width() <= 0 || box.Height() <= 0 {
		return face.Box{}, false
	}
	return box, true
}
