/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/period/*        Period resolution
  /api/projects/*      Projects, entries, sources, report creation
  /api/reports/*       Report retrieval and lifecycle actions
  /api/aggregates/*    Monthly dashboard rows
  /api/rules           Reduction-rule configuration
  /api/scenarios/*     Demo scenarios and database reset

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

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
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Period resolution
		r.Get("/period/resolve", h.ResolvePeriod)

		// Project routes
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", h.ListProjects)
			r.Post("/", h.CreateProject)
			r.Get("/{id}", h.GetProject)

			// Daily entries
			r.Post("/{id}/entries", h.CreateEntry)
			r.Get("/{id}/entries", h.ListEntries)

			// Source collections
			r.Post("/{id}/trainings", h.CreateTraining)
			r.Post("/{id}/awareness", h.CreateAwareness)
			r.Post("/{id}/permits", h.CreatePermit)

			// Weekly reports
			r.Post("/{id}/reports", h.CreateReport)
			r.Get("/{id}/reports", h.ListReports)
		})

		// Report lifecycle routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/{id}", h.GetReport)
			r.Patch("/{id}", h.EditReport)
			r.Post("/{id}/submit", h.SubmitReport)
			r.Post("/{id}/approve", h.ApproveReport)
			r.Post("/{id}/reject", h.RejectReport)
			r.Delete("/{id}", h.DeleteReport)
		})

		// Aggregate routes
		r.Route("/aggregates", func(r chi.Router) {
			r.Get("/monthly", h.MonthlyAggregates)
		})

		// Reduction-rule configuration
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.GetRules)
			r.Put("/", h.UpdateRules)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return r
}
