package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/notelab/notelab-api/auth"
	"github.com/notelab/notelab-api/middleware"
)

// GET /api/me
func Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFrom(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": caller})
}

// GET /health
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DevTokenHandler issues local session cookies when running without an
// Auth0 tenant. It is only mounted in development mode.
type DevTokenHandler struct {
	Secret       string
	SecureCookie bool
}

// POST /auth/token
func (h *DevTokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject string `json:"sub"`
		Email   string `json:"email"`
		Name    string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Subject == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "sub and email are required")
		return
	}

	token, err := auth.CreateToken(h.Secret, req.Subject, req.Email, req.Name)
	if err != nil {
		log.Printf("IssueToken: signing failed: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	auth.SetSessionCookie(w, token, h.SecureCookie)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
