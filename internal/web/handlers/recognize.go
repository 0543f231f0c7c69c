package handlers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/facetrace/internal/recognizer"
	"github.com/kozaktomas/facetrace/internal/track"
)

// RecognizeHandler serves recognition requests and owns the per-stream
// tracker state. Each stream_id maps to exactly one tracker; requests
// without a stream_id run against a fresh, independent tracker.
type RecognizeHandler struct {
	pipeline *recognizer.Pipeline
	maxFaces int

	mu      sync.Mutex
	streams map[string]*track.Tracker
}

// NewRecognizeHandler creates a recognize handler.
func NewRecognizeHandler(pipeline *recognizer.Pipeline, maxFaces int) *RecognizeHandler {
	return &RecognizeHandler{
		pipeline: pipeline,
		maxFaces: maxFaces,
		streams:  make(map[string]*track.Tracker),
	}
}

// recognizeRequest is the POST /recognize body.
type recognizeRequest struct {
	ImageData          string `json:"image_data"`
	PersonName         string `json:"person_name"`
	PersonRelationship string `json:"person_relationship"`
	StreamID           string `json:"stream_id"`
}

// tracker returns the tracker for a stream, creating it on first use.
func (h *RecognizeHandler) tracker(streamID string) *track.Tracker {
	if streamID == "" {
		// One-shot call, independent of any stream history.
		return track.New(h.maxFaces)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	tr, ok := h.streams[streamID]
	if !ok {
		tr = track.New(h.maxFaces)
		h.streams[streamID] = tr
	}
	return tr
}

// Recognize handles POST /api/v1/recognize.
func (h *RecognizeHandler) Recognize(w http.ResponseWriter, r *http.Request) {
	var req recognizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}
	if req.ImageData == "" {
		respondError(w, http.StatusBadRequest, "image_data is required")
		return
	}

	result := h.pipeline.Recognize(r.Context(), h.tracker(req.StreamID), recognizer.Input{
		ImageData:          req.ImageData,
		PersonName:         req.PersonName,
		PersonRelationship: req.PersonRelationship,
	})

	// The result envelope carries success/failure; HTTP status stays 200.
	respondJSON(w, http.StatusOK, result)
}

// ResetStream handles POST /api/v1/streams/{id}/reset. The stream keeps
// its tracker but drops all association history.
func (h *RecognizeHandler) ResetStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	tr, ok := h.streams[id]
	h.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "unknown stream")
		return
	}

	tr.Reset()
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// DeleteStream handles DELETE /api/v1/streams/{id}, destroying the
// stream's tracker entirely.
func (h *RecognizeHandler) DeleteStream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	h.mu.Lock()
	_, ok := h.streams[id]
	delete(h.streams, id)
	h.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "unknown stream")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
