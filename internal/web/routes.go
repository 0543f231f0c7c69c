package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/facetrace/internal/recognizer"
	"github.com/kozaktomas/facetrace/internal/registry"
	"github.com/kozaktomas/facetrace/internal/web/handlers"
)

func (s *Server) setupRoutes(pipeline *recognizer.Pipeline, reader registry.Reader, maxFaces int) {
	recognizeHandler := handlers.NewRecognizeHandler(pipeline, maxFaces)
	peopleHandler := handlers.NewPeopleHandler(reader)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Recognition
		r.Post("/recognize", recognizeHandler.Recognize)

		// Stream tracker lifecycle
		r.Post("/streams/{id}/reset", recognizeHandler.ResetStream)
		r.Delete("/streams/{id}", recognizeHandler.DeleteStream)

		// Enrolled people
		r.Get("/people", peopleHandler.List)
	})
}
