/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the dashboard front-end

ROUTE GROUPS:
  /api/staff/*            Staff management and salary
  /api/work-logs/*        Work interval recording
  /api/daily-summaries/*  Monthly aggregation

SECURITY NOTE:
  No authentication middleware; the dashboard is single-operator and
  auth is out of scope.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)
			r.Post("/", h.CreateStaff)
			r.Put("/{id}/advance", h.UpdateAdvance)
			r.Get("/{id}/salary", h.CalculateSalary)
		})

		r.Route("/work-logs", func(r chi.Router) {
			r.Get("/", h.ListWorkLogs)
			r.Post("/", h.CreateWorkLog)
		})

		r.Route("/daily-summaries", func(r chi.Router) {
			r.Get("/monthly", h.MonthlySummary)
		})
	})

	return r
}
