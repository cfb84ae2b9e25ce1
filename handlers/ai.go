package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/notelab/notelab-api/middleware"
)

// Enricher is the AI enrichment surface the handler depends on.
type Enricher interface {
	Summarize(ctx context.Context, userID uint, noteID string) (string, error)
	GenerateTags(ctx context.Context, userID uint, noteID string) ([]string, error)
}

type AIHandler struct {
	Service Enricher
}

// POST /api/ai/summary
func (h *AIHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	caller, noteID, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	summary, err := h.Service.Summarize(r.Context(), caller, noteID)
	if err != nil {
		log.Printf("Summarize: note %s: %v", noteID, err)
		respondTaxonomyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"summary": summary,
	})
}

// POST /api/ai/tags
func (h *AIHandler) GenerateTags(w http.ResponseWriter, r *http.Request) {
	caller, noteID, ok := h.decodeRequest(w, r)
	if !ok {
		return
	}

	tags, err := h.Service.GenerateTags(r.Context(), caller, noteID)
	if err != nil {
		log.Printf("GenerateTags: note %s: %v", noteID, err)
		respondTaxonomyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"tags":    tags,
	})
}

// decodeRequest handles the parts both flows share: caller resolution and
// the {noteId} body. A false return means the response is already written.
func (h *AIHandler) decodeRequest(w http.ResponseWriter, r *http.Request) (uint, string, bool) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return 0, "", false
	}

	var req struct {
		NoteID string `json:"noteId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return 0, "", false
	}

	noteID := strings.TrimSpace(req.NoteID)
	if noteID == "" {
		respondError(w, http.StatusBadRequest, "noteId required")
		return 0, "", false
	}

	return caller.ID, noteID, true
}
