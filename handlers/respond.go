package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/notelab/notelab-api/genai"
	"github.com/notelab/notelab-api/store"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("respondJSON: encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondTaxonomyError maps a layer error onto the wire taxonomy:
// validation 400, not-found 404, everything else (upstream included) 500.
func respondTaxonomyError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Note not found")
	case errors.Is(err, genai.ErrUpstream):
		respondError(w, http.StatusInternalServerError, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
