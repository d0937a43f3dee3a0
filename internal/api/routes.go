package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures the router: public health/login endpoints, then the
// authenticated admin API under /api.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS - the admin frontend is served separately and sends bearer tokens
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check (no auth required)
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", h.HandleLogin)

		// Everything below requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(h.auth.Middleware)

			r.Post("/auth/logout", h.HandleLogout)
			r.Get("/auth/me", h.HandleMe)

			r.Route("/agents", func(r chi.Router) {
				r.Post("/", h.HandleCreateAgent)
				r.Get("/", h.HandleListAgents)
				r.Get("/{id}", h.HandleGetAgent)
				r.Put("/{id}", h.HandleUpdateAgent)
				r.Delete("/{id}", h.HandleDeleteAgent)
			})

			r.Route("/lists", func(r chi.Router) {
				r.Post("/upload", h.HandleUploadList)
				r.Get("/", h.HandleListLists)
				r.Get("/{id}", h.HandleGetList)
				r.Delete("/{id}", h.HandleDeleteList)
			})
		})
	})

	return r
}
