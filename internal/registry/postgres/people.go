package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/pgvector/pgvector-go"

	"github.com/kozaktomas/facetrace/internal/registry"
)

// PersonRepository provides PostgreSQL-backed people storage with an
// optional in-memory HNSW index for candidate pre-selection.
type PersonRepository struct {
	pool        *Pool
	index       *registry.Index
	indexMu     sync.RWMutex
	indexActive bool
}

// NewPersonRepository creates a new PostgreSQL person repository.
func NewPersonRepository(pool *Pool) *PersonRepository {
	return &PersonRepository{pool: pool}
}

// All retrieves every enrolled person ordered by id, which is insertion
// order. Matching relies on this ordering for deterministic tie-breaks.
func (r *PersonRepository) All(ctx context.Context) ([]registry.Person, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, relationship, embedding, color, created_at
		FROM people
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query people: %w", err)
	}
	defer rows.Close()

	var people []registry.Person
	for rows.Next() {
		var p registry.Person
		var vec pgvector.Vector
		if err := rows.Scan(&p.ID, &p.Name, &p.Relationship, &vec, &p.Color, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		p.Embedding = vec.Slice()
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate people: %w", err)
	}
	return people, nil
}

// Insert appends a new person and returns the stored record with its
// assigned id and timestamp. The write is not idempotent; concurrent
// enrollments of the same identity both succeed.
func (r *PersonRepository) Insert(ctx context.Context, p registry.Person) (registry.Person, error) {
	vec := pgvector.NewVector(p.Embedding)
	err := r.pool.QueryRow(ctx, `
		INSERT INTO people (name, relationship, embedding, color)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.Name, p.Relationship, vec, p.Color).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return registry.Person{}, fmt.Errorf("insert person: %w", err)
	}

	r.indexMu.RLock()
	active := r.indexActive
	r.indexMu.RUnlock()
	if active {
		// Index failures don't fail the write; the next rebuild catches up.
		_ = r.index.Add(p)
	}

	return p, nil
}

// Count returns the number of enrolled people.
func (r *PersonRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}
	return count, nil
}

// EnableIndex builds the in-memory HNSW index over all enrolled people.
// After a successful build, Nearest serves candidate queries from memory.
func (r *PersonRepository) EnableIndex(ctx context.Context) error {
	people, err := r.All(ctx)
	if err != nil {
		return fmt.Errorf("load people for index: %w", err)
	}

	ix := registry.NewIndex()
	ix.Build(people)

	r.indexMu.Lock()
	r.index = ix
	r.indexActive = len(people) > 0
	r.indexMu.Unlock()
	return nil
}

// IndexCount returns the number of people in the HNSW index.
func (r *PersonRepository) IndexCount() int {
	r.indexMu.RLock()
	defer r.indexMu.RUnlock()
	if r.index == nil {
		return 0
	}
	return r.index.Len()
}

// Nearest returns up to k candidate people for the query embedding. With
// an active index the candidates come from the HNSW graph; otherwise the
// full snapshot is returned and the caller scans it exactly.
func (r *PersonRepository) Nearest(ctx context.Context, embedding []float32, k int) ([]registry.Person, error) {
	r.indexMu.RLock()
	active := r.indexActive
	ix := r.index
	r.indexMu.RUnlock()

	if active {
		people, err := ix.Search(embedding, k)
		if err == nil {
			return people, nil
		}
		// Fall through to the exact scan on index failure.
	}
	return r.All(ctx)
}
