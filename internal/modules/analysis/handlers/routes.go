package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers all analysis module routes
func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/analyses", func(r chi.Router) {
		r.Post("/", h.HandleCreate)
		r.Get("/", h.HandleList)
		r.Get("/trends", h.HandleTrends)
	})
}
