/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack and route groups. This is
  the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the mobile web client
  5. Bearer:     JWT auth on everything behind /api except login

ROUTE GROUPS:
  /api/auth/*        Credential gate (public)
  /api/me/*          The caller's own record
  /api/promotions/*  Promotion catalog + read confirmations
  /api/assistant/*   Chat
  /api/admin/*       Admin console (admin role required)

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
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Public: the credential gate itself.
		r.Post("/auth/login", h.Login)

		// Everything else requires a session token.
		r.Group(func(r chi.Router) {
			r.Use(h.Tokens.Middleware)

			r.Route("/me", func(r chi.Router) {
				r.Get("/", h.Me)
				r.Put("/blood-type", h.UpdateBloodType)
				r.Post("/medical-records", h.AddMedicalRecord)
			})

			r.Route("/promotions", func(r chi.Router) {
				r.Get("/", h.ListPromotions)
				r.Post("/{id}/read", h.ConfirmPromotionRead)
			})

			r.Get("/announcements", h.ListAnnouncements)
			r.Get("/rewards/catalog", h.ListRewardsCatalog)
			r.Get("/employers", h.ListEmployers)

			r.Post("/assistant/chat", h.Chat)

			r.Route("/admin", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/workers", h.AdminListWorkers)
				r.Get("/summary", h.AdminSummary)
			})
		})
	})

	return r
}
