package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/CodeBellator/Agent-Management-System/internal/auth"
	"github.com/CodeBellator/Agent-Management-System/internal/config"
	"github.com/CodeBellator/Agent-Management-System/internal/ingest"
	"github.com/CodeBellator/Agent-Management-System/internal/roster"
)

// Handlers provides the HTTP handlers for the admin API
type Handlers struct {
	agents *roster.Store
	lists  *ingest.Store
	ingest *ingest.Service
	auth   *auth.Manager

	bcryptCost int
	uploadDir  string
	maxUpload  int64
}

// NewHandlers wires the stores and services behind the API
func NewHandlers(db *sql.DB, redisClient *redis.Client, cfg *config.Config) *Handlers {
	agents := roster.NewStore(db)
	lists := ingest.NewStore(db)

	return &Handlers{
		agents:     agents,
		lists:      lists,
		ingest:     ingest.NewService(agents, lists),
		auth:       auth.NewManager(cfg.Auth, db, redisClient),
		bcryptCost: cfg.Auth.BcryptCost,
		uploadDir:  cfg.Upload.Dir,
		maxUpload:  cfg.Upload.MaxSizeBytes,
	}
}

// AuthManager exposes the auth manager for route wiring
func (h *Handlers) AuthManager() *auth.Manager {
	return h.auth
}

// HealthCheck reports service liveness
// GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}
