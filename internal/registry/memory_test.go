package registry

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryInsertAssignsIDs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	first, err := m.Insert(ctx, Person{Name: "Anna", Relationship: "daughter"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	second, err := m.Insert(ctx, Person{Name: "Jan", Relationship: "son"})
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}
}

func TestMemoryAllPreservesInsertionOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	names := []string{"Anna", "Jan", "Marie"}
	for _, name := range names {
		if _, err := m.Insert(ctx, Person{Name: name}); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}

	people, err := m.All(ctx)
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(people) != len(names) {
		t.Fatalf("got %d people, want %d", len(people), len(names))
	}
	for i, p := range people {
		if p.Name != names[i] {
			t.Errorf("person %d = %q, want %q", i, p.Name, names[i])
		}
	}
}

func TestMemoryAllReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	if _, err := m.Insert(ctx, Person{Name: "Anna"}); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	people, _ := m.All(ctx)
	people[0].Name = "changed"

	again, _ := m.All(ctx)
	if again[0].Name != "Anna" {
		t.Error("All returned a shared slice, mutation leaked into the store")
	}
}

func TestMemoryErrorInjection(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.AllError = errors.New("boom")
	if _, err := m.All(ctx); err == nil {
		t.Error("All should fail with injected error")
	}

	m.InsertError = errors.New("boom")
	if _, err := m.Insert(ctx, Person{Name: "Anna"}); err == nil {
		t.Error("Insert should fail with injected error")
	}
}
