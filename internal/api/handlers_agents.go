package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/CodeBellator/Agent-Management-System/internal/roster"
)

// HandleCreateAgent creates a new agent
// POST /api/agents
func (h *Handlers) HandleCreateAgent(w http.ResponseWriter, r *http.Request) {
	var input roster.CreateAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if input.Name == "" || input.Email == "" || input.MobileNumber == "" ||
		input.CountryCode == "" || input.Password == "" {
		writeError(w, "Please provide all required fields", http.StatusBadRequest)
		return
	}
	if len(input.Password) < 6 {
		writeError(w, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), h.bcryptCost)
	if err != nil {
		log.Printf("[Agents] Hash password: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	agent := &roster.Agent{
		Name:         input.Name,
		Email:        input.Email,
		MobileNumber: input.MobileNumber,
		CountryCode:  input.CountryCode,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := h.agents.Create(r.Context(), agent); err != nil {
		if errors.Is(err, roster.ErrDuplicateEmail) {
			writeError(w, "Agent with this email already exists", http.StatusBadRequest)
			return
		}
		log.Printf("[Agents] Create: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"agent":   agent,
	})
}

// HandleListAgents returns all agents
// GET /api/agents
func (h *Handlers) HandleListAgents(w http.ResponseWriter, r *http.Request) {
	agents, err := h.agents.List(r.Context())
	if err != nil {
		log.Printf("[Agents] List: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}
	if agents == nil {
		agents = []*roster.Agent{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"agents":  agents,
	})
}

// HandleGetAgent returns a single agent
// GET /api/agents/{id}
func (h *Handlers) HandleGetAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Agent not found", http.StatusNotFound)
		return
	}

	agent, err := h.agents.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			writeError(w, "Agent not found", http.StatusNotFound)
			return
		}
		log.Printf("[Agents] Get: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"agent":   agent,
	})
}

// HandleUpdateAgent applies a partial update to an agent
// PUT /api/agents/{id}
func (h *Handlers) HandleUpdateAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Agent not found", http.StatusNotFound)
		return
	}

	var input roster.UpdateAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	agent, err := h.agents.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, roster.ErrNotFound):
			writeError(w, "Agent not found", http.StatusNotFound)
		case errors.Is(err, roster.ErrDuplicateEmail):
			writeError(w, "Agent with this email already exists", http.StatusBadRequest)
		default:
			log.Printf("[Agents] Update: %v", err)
			writeError(w, "Server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"agent":   agent,
	})
}

// HandleDeleteAgent removes an agent
// DELETE /api/agents/{id}
func (h *Handlers) HandleDeleteAgent(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, "Agent not found", http.StatusNotFound)
		return
	}

	if err := h.agents.Delete(r.Context(), id); err != nil {
		if errors.Is(err, roster.ErrNotFound) {
			writeError(w, "Agent not found", http.StatusNotFound)
			return
		}
		log.Printf("[Agents] Delete: %v", err)
		writeError(w, "Server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Agent deleted successfully",
	})
}
