package handlers

import (
	"net/http"
	"time"

	"github.com/kozaktomas/facetrace/internal/registry"
)

// PeopleHandler exposes read-only access to the enrolled people.
type PeopleHandler struct {
	reader registry.Reader
}

// NewPeopleHandler creates a people handler.
func NewPeopleHandler(reader registry.Reader) *PeopleHandler {
	return &PeopleHandler{reader: reader}
}

// personView is the API shape of an enrolled person; embeddings stay
// server-side.
type personView struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	Color        string    `json:"color"`
	CreatedAt    time.Time `json:"created_at"`
}

// List handles GET /api/v1/people. An optional ?name= query filters by
// normalized name, so "jan-novak" finds "Jan Novák".
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	people, err := h.reader.All(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load people")
		return
	}

	nameFilter := registry.NormalizeName(r.URL.Query().Get("name"))

	views := make([]personView, 0, len(people))
	for _, p := range people {
		if nameFilter != "" && registry.NormalizeName(p.Name) != nameFilter {
			continue
		}
		views = append(views, personView{
			ID:           p.ID,
			Name:         p.Name,
			Relationship: p.Relationship,
			Color:        p.Color,
			CreatedAt:    p.CreatedAt,
		})
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"people": views,
		"count":  len(views),
	})
}
