// Package track stabilizes face detections across consecutive frames of a
// single camera stream using bounding-box overlap association.
package track

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kozaktomas/facetrace/internal/face"
)

const (
	// AssociationThreshold is the minimum IoU for matching a detection to
	// a face from the previous frame.
	AssociationThreshold = 0.3
	// InitialConfidence is assigned to every newly seen face.
	InitialConfidence = 0.5
	// ConfidenceStep is the reinforcement added per associated frame.
	ConfidenceStep = 0.1
	// StableConfidence is the cutoff below which faces are hidden from the
	// caller (but still kept for future association).
	StableConfidence = 0.3
	// DefaultMaxFaces caps the number of faces retained between frames.
	DefaultMaxFaces = 5
)

// Tracker holds the per-stream association state. Each logical camera
// stream owns exactly one Tracker; calls against the same Tracker are
// serialized internally, and calls must be applied in arrival order.
type Tracker struct {
	mu       sync.Mutex
	prev     []face.DetectedFace
	maxFaces int
}

// New creates an empty tracker. maxFaces <= 0 selects DefaultMaxFaces.
func New(maxFaces int) *Tracker {
	if maxFaces <= 0 {
		maxFaces = DefaultMaxFaces
	}
	return &Tracker{maxFaces: maxFaces}
}

// Update associates the current frame's faces with the previous frame,
// assigns track IDs and confidences, stores the new state, and returns
// the stabilized list. An empty frame clears the state, so identical
// boxes in a later frame get fresh track IDs.
func (t *Tracker) Update(current []face.DetectedFace) []face.DetectedFace {
	t.mu.Lock()
	defer t.mu.Unlock()

	tracked := make([]face.DetectedFace, 0, len(current))
	for _, cur := range current {
		if prev, ok := t.bestMatch(cur.Box); ok {
			cur.TrackID = prev.TrackID
			cur.TrackConfidence = min(1.0, prev.TrackConfidence+ConfidenceStep)
		} else {
			cur.TrackID = uuid.NewString()
			cur.TrackConfidence = InitialConfidence
		}
		tracked = append(tracked, cur)
	}

	if len(tracked) > t.maxFaces {
		t.prev = tracked[:t.maxFaces]
	} else {
		t.prev = tracked
	}

	// Low-confidence faces stay in state but are hidden from the caller.
	stable := make([]face.DetectedFace, 0, len(tracked))
	for _, f := range tracked {
		if f.TrackConfidence >= StableConfidence {
			stable = append(stable, f)
		}
	}
	return stable
}

// bestMatch finds the previous face with the highest IoU against box,
// provided it exceeds the association threshold.
func (t *Tracker) bestMatch(box face.Box) (face.DetectedFace, bool) {
	var best face.DetectedFace
	bestIoU := 0.0
	found := false
	for _, prev := range t.prev {
		iou := face.IoU(box, prev.Box)
		if iou > AssociationThreshold && iou > bestIoU {
			bestIoU = iou
			best = prev
			found = true
		}
	}
	return best, found
}

// Reset drops all tracking history for the stream.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prev = nil
}

// Size returns the number of faces currently retained in state.
func (t *Tracker) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.prev)
}
