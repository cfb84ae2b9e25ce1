package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/notelab/notelab-api/middleware"
	"github.com/notelab/notelab-api/store"
)

// NoteHandler serves the note CRUD and search surface. Every operation
// derives the caller from the request context placed there by SyncUser;
// client-supplied user IDs are never trusted.
type NoteHandler struct {
	Store *store.Store
}

// GET /api/notes
// An optional q parameter narrows the list; an empty or blank q lists all.
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	var err error
	var notes interface{}
	if query == "" {
		notes, err = h.Store.ListNotes(caller.ID)
	} else {
		notes, err = h.Store.SearchNotes(caller.ID, query)
	}
	if err != nil {
		log.Printf("ListNotes: query failed for user %s: %v", caller.PublicID, err)
		respondTaxonomyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

// GET /api/notes/search
func (h *NoteHandler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	h.ListNotes(w, r)
}

// GET /api/notes/{noteID}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := r.PathValue("noteID")
	note, err := h.Store.GetNote(noteID, caller.ID)
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.Store.CreateNote(caller.ID, req.Title, req.Content)
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	log.Printf("CreateNote: created note %s for user %s", note.PublicID, caller.PublicID)
	respondJSON(w, http.StatusCreated, map[string]interface{}{"note": note})
}

// PUT /api/notes/{noteID}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := r.PathValue("noteID")

	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note, err := h.Store.UpdateNote(noteID, caller.ID, req.Title, req.Content)
	if err != nil {
		respondTaxonomyError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"note": note})
}

// DELETE /api/notes/{noteID}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	noteID := r.PathValue("noteID")
	if err := h.Store.DeleteNote(noteID, caller.ID); err != nil {
		respondTaxonomyError(w, err)
		return
	}

	log.Printf("DeleteNote: deleted note %s for user %s", noteID, caller.PublicID)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
