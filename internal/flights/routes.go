package flights

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// WebRoutes registers the server-rendered routes behind the redirecting
// login gate.
func (h *Handler) WebRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Get("/", h.Home)
		r.Get("/list", h.List)
		r.Get("/search", h.Search)
		r.Get("/details", h.Details)
		r.Get("/edit", h.EditForm)
		r.Post("/flights", h.Create)
		r.Put("/flights/{id}", h.Update)
		r.Delete("/flights/{flightNumber}", h.Delete)
		r.Get("/api-test", h.APITest)
	})
}

// APIRoutes registers the JSON routes behind the rejecting gate.
func (h *Handler) APIRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Use(gate)
		r.Post("/flights", h.APICreate)
		r.Get("/flights", h.APIList)
		r.Get("/flights/{flightNumber}", h.APIGet)
		r.Put("/flights/{flightNumber}", h.APIUpdate)
		r.Delete("/flights/{flightNumber}", h.APIDelete)
		r.Get("/search", h.APISearch)
	})
}
