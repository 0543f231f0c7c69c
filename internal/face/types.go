// Package face holds the shared face data model: bounding boxes, detected
// faces, and the deterministic appearance embedding.
package face

// EmbeddingDim is the fixed length of every face embedding.
const EmbeddingDim = 512

// Box is a face bounding box in pixel coordinates.
// Invariant: Right > Left and Bottom > Top for any detector output.
type Box struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() int {
	return b.Bottom - b.Top
}

// Area returns the box area in pixels.
func (b Box) Area() int {
	return b.Width() * b.Height()
}

// DetectedFace is one face as it moves through the pipeline. Detection and
// quality scoring fill Box and QualityScore, the extractor fills Embedding,
// and the tracker assigns TrackID and TrackConfidence.
type DetectedFace struct {
	Box             Box       `json:"box"`
	QualityScore    float64   `json:"quality_score"`
	Embedding       []float32 `json:"-"`
	TrackID         string    `json:"track_id"`
	TrackConfidence float64   `json:"track_confidence"`
}
