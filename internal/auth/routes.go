package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the credential endpoints on the root router. The
// POST endpoints sit behind the per-IP throttle.
func (h *Handler) Routes(r chi.Router, throttle func(http.Handler) http.Handler) {
	r.Get("/register", h.ShowRegister)
	r.With(throttle).Post("/register", h.Register)
	r.Get("/login", h.ShowLogin)
	r.With(throttle).Post("/login", h.Login)
	r.Get("/logout", h.Logout)
}
