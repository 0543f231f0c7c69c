package registry

import (
	"errors"
	"sync"

	"github.com/coder/hnsw"
)

// hnswMaxNeighbors is the M parameter of the HNSW graph.
const hnswMaxNeighbors = 16

// Index is an in-memory HNSW graph over enrolled people, used by durable
// backends to pre-select match candidates without a full table scan. The
// graph is approximate; callers re-check candidates with exact cosine
// similarity before accepting a match.
type Index struct {
	mu       sync.RWMutex
	graph    *hnsw.Graph[int64]
	idToItem map[int64]*Person
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{idToItem: make(map[int64]*Person)}
}

// Build replaces the index contents with the given people. Records without
// an embedding are skipped.
func (ix *Index) Build(people []Person) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if len(people) == 0 {
		ix.graph = nil
		ix.idToItem = make(map[int64]*Person)
		return
	}

	g := hnsw.NewGraph[int64]()
	g.M = hnswMaxNeighbors
	g.Ml = 1.0 / float64(hnswMaxNeighbors) // Standard HNSW formula
	g.Distance = hnsw.CosineDistance

	ix.idToItem = make(map[int64]*Person, len(people))
	for i := range people {
		p := &people[i]
		if len(p.Embedding) == 0 {
			continue
		}
		g.Add(hnsw.MakeNode(p.ID, p.Embedding))
		ix.idToItem[p.ID] = p
	}
	ix.graph = g
}

// Add inserts a single person into an already built index.
func (ix *Index) Add(p Person) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.graph == nil {
		return errors.New("index not initialized")
	}
	if len(p.Embedding) == 0 {
		return errors.New("person has no embedding")
	}
	ix.graph.Add(hnsw.MakeNode(p.ID, p.Embedding))
	stored := p
	ix.idToItem[p.ID] = &stored
	return nil
}

// Search returns up to k people nearest to the query embedding, ordered by
// graph distance. IDs are resolved back to full records.
func (ix *Index) Search(query []float32, k int) ([]Person, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if ix.graph == nil {
		return nil, errors.New("index not initialized")
	}

	neighbors := ix.graph.Search(query, k)
	out := make([]Person, 0, len(neighbors))
	for _, n := range neighbors {
		if p, ok := ix.idToItem[n.Key]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

// Len returns the number of indexed people.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.idToItem)
}
