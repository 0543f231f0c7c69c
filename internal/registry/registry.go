// Package registry defines the enrolled-identity store consumed by the
// recognition pipeline. Records are append/read only; the pipeline never
// mutates or deletes an enrolled person.
package registry

import (
	"context"
	"time"

	"github.com/kozaktomas/facetrace/internal/face"
)

// Person is one enrolled identity.
type Person struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Embedding    []float32 `json:"-"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasEmbedding reports whether the record carries a usable embedding.
func (p *Person) HasEmbedding() bool {
	return len(p.Embedding) == face.EmbeddingDim
}

// Reader provides a snapshot of all enrolled people. Implementations must
// return records in a stable order (insertion order) so that matching
// tie-breaks are deterministic.
type Reader interface {
	All(ctx context.Context) ([]Person, error)
}

// Writer appends a new person and returns the stored record with its
// assigned ID. Writes are not assumed to be idempotent.
type Writer interface {
	Insert(ctx context.Context, p Person) (Person, error)
}

// Store combines read and write access to the registry.
type Store interface {
	Reader
	Writer
}

// CandidateFinder is an optional Reader extension: backends with a vector
// index can narrow the search to the k nearest enrolled people instead of
// returning the full snapshot.
type CandidateFinder interface {
	Nearest(ctx context.Context, embedding []float32, k int) ([]Person, error)
}
