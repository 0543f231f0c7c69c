package recognizer

import (
	"context"
	"fmt"

	"github.com/kozaktomas/facetrace/internal/registry"
)

// DefaultMatchThreshold is the cosine similarity a candidate must strictly
// exceed to count as a match.
const DefaultMatchThreshold = 0.7

// hnswCandidates is how many nearest neighbors are pulled from an indexed
// backend before the exact similarity re-check.
const hnswCandidates = 16

// Matcher compares face embeddings against the registry and drives
// enrollment of unknown people.
type Matcher struct {
	store     registry.Store
	threshold float64
}

// NewMatcher creates a matcher over the given registry. A threshold <= 0
// selects DefaultMatchThreshold.
func NewMatcher(store registry.Store, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &Matcher{store: store, threshold: threshold}
}

// Search returns the enrolled person whose embedding is most similar to
// the query, provided the similarity strictly exceeds the threshold.
// Returns nil with no error when nobody matches. On exact ties the
// first-seen record wins; snapshot iteration order is stable.
func (m *Matcher) Search(ctx context.Context, embedding []float32) (*registry.Person, error) {
	people, err := m.candidates(ctx, embedding)
	if err != nil {
		return nil, fmt.Errorf("registry search: %w", err)
	}

	var best *registry.Person
	bestSimilarity := 0.0
	for i := range people {
		p := &people[i]
		if !p.HasEmbedding() {
			continue
		}
		similarity := registry.CosineSimilarity(embedding, p.Embedding)
		if similarity > m.threshold && similarity > bestSimilarity {
			bestSimilarity = similarity
			best = p
		}
	}
	return best, nil
}

// candidates narrows the snapshot through the backend's vector index when
// one is available, falling back to the full registry snapshot.
func (m *Matcher) candidates(ctx context.Context, embedding []float32) ([]registry.Person, error) {
	if finder, ok := m.store.(registry.CandidateFinder); ok {
		return finder.Nearest(ctx, embedding, hnswCandidates)
	}
	return m.store.All(ctx)
}

// Enroll appends a new person to the registry and returns the stored
// record. Concurrent enrollments of the same identity are not
// deduplicated; both writes succeed.
func (m *Matcher) Enroll(ctx context.Context, name, relationship string, embedding []float32, color string) (registry.Person, error) {
	p, err := m.store.Insert(ctx, registry.Person{
		Name:         name,
		Relationship: relationship,
		Embedding:    embedding,
		Color:        color,
	})
	if err != nil {
		return registry.Person{}, fmt.Errorf("registry insert: %w", err)
	}
	return p, nil
}
