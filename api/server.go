/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontends

ROUTE GROUPS:
  /api/hotels/*        Hotel CRUD, availability and occupancy queries
  /api/customers/*     Customer CRUD
  /api/reservations/*  Reservation create/cancel/lookup
  /healthz             Liveness probe
  /metrics             Prometheus metrics

SECURITY NOTE:
  No authentication middleware; all endpoints are public. The system is
  single-user by design.

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
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", h.ListHotels)
			r.Post("/", h.CreateHotel)
			r.Get("/{id}", h.GetHotel)
			r.Put("/{id}", h.ModifyHotel)
			r.Delete("/{id}", h.DeleteHotel)
			r.Get("/{id}/availability", h.GetAvailability)
			r.Get("/{id}/occupancy", h.GetOccupancy)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Put("/{id}", h.ModifyCustomer)
			r.Delete("/{id}", h.DeleteCustomer)
		})

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.ListReservations)
			r.Post("/", h.CreateReservation)
			r.Get("/{id}", h.GetReservation)
			r.Delete("/{id}", h.CancelReservation)
		})
	})

	r.Get("/healthz", h.Health)
	r.Method("GET", "/metrics", h.Metrics.Handler())

	return r
}
