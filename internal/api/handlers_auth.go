package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/CodeBellator/Agent-Management-System/internal/auth"
)

// LoginRequest is the request body for admin login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin authenticates an admin and issues a bearer token
// POST /api/auth/login
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, "Please provide email and password", http.StatusBadRequest)
		return
	}

	token, actor, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		log.Printf("[Auth] Login error: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
		"user":    actor,
	})
}

// HandleLogout revokes the caller's token
// POST /api/auth/logout
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, ok := auth.BearerToken(r)
	if !ok {
		writeError(w, "authorization required", http.StatusUnauthorized)
		return
	}

	if err := h.auth.Revoke(r.Context(), token); err != nil {
		log.Printf("[Auth] Logout error: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out successfully",
	})
}

// HandleMe returns the authenticated actor
// GET /api/auth/me
func (h *Handlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromContext(r.Context())
	if actor == nil {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    actor,
	})
}
