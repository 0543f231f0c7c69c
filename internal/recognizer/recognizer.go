// Package recognizer orchestrates the face recognition pipeline: decode,
// detect, score, embed, track, and match against the identity registry.
package recognizer

import (
	"context"
	"math/rand"

	"github.com/kozaktomas/facetrace/internal/detect"
	"github.com/kozaktomas/facetrace/internal/face"
	"github.com/kozaktomas/facetrace/internal/imaging"
	"github.com/kozaktomas/facetrace/internal/registry"
	"github.com/kozaktomas/facetrace/internal/track"
)

// Detector produces raw face boxes from an equalized grayscale buffer.
type Detector interface {
	Detect(g *imaging.Gray) []face.Box
}

// Input is one recognition request. Name and relationship are only used
// to enroll a new person when the face matches nobody.
type Input struct {
	ImageData          string `json:"image_data"`
	PersonName         string `json:"person_name,omitempty"`
	PersonRelationship string `json:"person_relationship,omitempty"`
}

// Result is the externally visible outcome of one recognize call. All
// pipeline failures are folded into this envelope; Recognize never panics
// and never returns an error.
type Result struct {
	Success      bool    `json:"success"`
	Person       string  `json:"person"`
	Relationship string  `json:"relationship"`
	Confidence   float64 `json:"confidence,omitempty"`
	Color        string  `json:"color,omitempty"`
	IsNewPerson  bool    `json:"is_new_person,omitempty"`
	Message      string  `json:"message"`
	Error        string  `json:"error,omitempty"`
}

const unknownPerson = "Unknown"

// Options tune the pipeline. Zero values select production defaults.
type Options struct {
	MinQuality     float64  // quality acceptance threshold
	MatchThreshold float64  // cosine similarity threshold
	Colors         []string // palette for newly enrolled people
}

var defaultColors = []string{"red", "blue", "green", "yellow", "purple", "orange", "pink", "cyan"}

// Pipeline runs recognition requests. It holds no per-stream state; the
// caller owns one track.Tracker per camera stream and passes it in.
type Pipeline struct {
	detector   Detector
	matcher    *Matcher
	minQuality float64
	colors     []string
}

// New wires a pipeline from a detector and a registry.
func New(detector Detector, store registry.Store, opts Options) *Pipeline {
	minQuality := opts.MinQuality
	if minQuality <= 0 {
		minQuality = detect.DefaultMinQuality
	}
	colors := opts.Colors
	if len(colors) == 0 {
		colors = defaultColors
	}
	return &Pipeline{
		detector:   detector,
		matcher:    NewMatcher(store, opts.MatchThreshold),
		minQuality: minQuality,
		colors:     colors,
	}
}

// Recognize runs one recognition attempt against the given stream tracker.
// The tracker must be the one owned by the requesting stream; passing a
// fresh tracker makes the call independent of any history.
func (p *Pipeline) Recognize(ctx context.Context, tr *track.Tracker, in Input) Result {
	stable, res := p.detectStable(tr, in.ImageData)
	if res != nil {
		return *res
	}

	if len(stable) == 0 {
		return Result{
			Success:      false,
			Person:       unknownPerson,
			Relationship: unknownPerson,
			Message:      "No faces detected in the image",
		}
	}

	// First stabilized face wins; there is no ranking beyond detector and
	// track order.
	first := stable[0]

	match, err := p.matcher.Search(ctx, first.Embedding)
	if err != nil {
		return failure(err)
	}

	if match != nil {
		return Result{
			Success:      true,
			Person:       match.Name,
			Relationship: match.Relationship,
			Confidence:   0.8, // Default confidence for registry matches
			Color:        match.Color,
			IsNewPerson:  false,
			Message:      "Found existing person: " + match.Name + " (" + match.Relationship + ")",
		}
	}

	if in.PersonName != "" && in.PersonRelationship != "" {
		enrolled, err := p.matcher.Enroll(ctx, in.PersonName, in.PersonRelationship, first.Embedding, p.pickColor())
		if err != nil {
			return failure(err)
		}
		return Result{
			Success:      true,
			Person:       enrolled.Name,
			Relationship: enrolled.Relationship,
			Confidence:   1.0,
			Color:        enrolled.Color,
			IsNewPerson:  true,
			Message:      "Added new person: " + enrolled.Name + " (" + enrolled.Relationship + ")",
		}
	}

	return Result{
		Success:      false,
		Person:       unknownPerson,
		Relationship: unknownPerson,
		Confidence:   first.QualityScore,
		Message:      "Face detected but not recognized. Provide name and relationship to add new person.",
	}
}

// detectStable runs decode through tracking and returns the stabilized
// face list, or a terminal failure Result on decode errors.
func (p *Pipeline) detectStable(tr *track.Tracker, imageData string) ([]face.DetectedFace, *Result) {
	img, err := imaging.Decode(imageData)
	if err != nil {
		res := failure(err)
		return nil, &res
	}

	gray := imaging.FromImage(img).Equalize()
	boxes := p.detector.Detect(gray)
	accepted := detect.FilterByQuality(boxes, p.minQuality)

	for i := range accepted {
		box := accepted[i].Box
		region := gray.Crop(box.Top, box.Left, box.Bottom, box.Right)
		accepted[i].Embedding = face.Extract(region)
	}

	// An empty frame (raw or quality-filtered) flows through the tracker
	// so stale history never matches a later frame.
	return tr.Update(accepted), nil
}

// pickColor draws a display color for a newly enrolled person.
func (p *Pipeline) pickColor() string {
	return p.colors[rand.Intn(len(p.colors))]
}

// failure wraps an internal error into the caller-visible envelope.
func failure(err error) Result {
	return Result{
		Success:      false,
		Person:       unknownPerson,
		Relationship: unknownPerson,
		Message:      "Face recognition failed",
		Error:        err.Error(),
	}
}
