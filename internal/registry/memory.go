package registry

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory Store. It backs tests and the demo registry mode;
// records live only for the process lifetime. Insertion order is preserved
// so snapshot iteration is deterministic.
type Memory struct {
	mu     sync.RWMutex
	people []Person
	nextID int64

	// Error injection for tests.
	AllError    error
	InsertError error
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{nextID: 1}
}

// All returns a copy of every enrolled person in insertion order.
func (m *Memory) All(ctx context.Context) ([]Person, error) {
	if m.AllError != nil {
		return nil, m.AllError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Person, len(m.people))
	copy(out, m.people)
	return out, nil
}

// Insert appends a person and assigns the next ID. Concurrent inserts of
// the same identity are not deduplicated, matching the durable backends.
func (m *Memory) Insert(ctx context.Context, p Person) (Person, error) {
	if m.InsertError != nil {
		return Person{}, m.InsertError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = m.nextID
	m.nextID++
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	m.people = append(m.people, p)
	return p, nil
}

// Count returns the number of enrolled people.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.people)
}
