package flights

import (
	"context"
	"html/template"
	"net/http"
	"net/url"

	"github.com/FlightLedger/FL-Backend/internal/logger"
	"github.com/FlightLedger/FL-Backend/internal/utils"
	"github.com/FlightLedger/FL-Backend/internal/web"
	"github.com/go-chi/chi/v5"
)

// Handler serves both the server-rendered pages and the JSON API over
// the same store.
type Handler struct {
	Store *Store
	Pages *web.Renderer
}

type sessionUser struct {
	ID   string
	Name string
}

func userFrom(ctx context.Context) sessionUser {
	id, _ := utils.GetUserIDFromContext(ctx)
	name, _ := utils.GetNameFromContext(ctx)
	return sessionUser{ID: id, Name: name}
}

type listPage struct {
	Flights    []Flight
	User       sessionUser
	Success    string
	Error      string
	SearchTerm string
}

type searchPage struct {
	Flights      []Flight
	User         sessionUser
	SearchTerm   string
	ResultsCount int
}

type flightPage struct {
	Flight   Flight
	User     sessionUser
	PhotoSrc template.URL
}

type infoPage struct {
	Message string
	User    sessionUser
}

func redirectError(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/list?error="+url.QueryEscape(message), http.StatusFound)
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, message string) {
	http.Redirect(w, r, "/list?success="+url.QueryEscape(message), http.StatusFound)
}

// List shows the owner's flights, optionally filtered by the embedded
// search box, with success/error flash picked up from the query string.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	term := r.URL.Query().Get("q")

	flights, err := h.Store.List(user.ID, term)
	if err != nil {
		logger.L.Error().Err(err).Msg("list: store read failed")
		h.Pages.Render(w, "info.html", infoPage{Message: "Something went wrong", User: user})
		return
	}

	h.Pages.Render(w, "list.html", listPage{
		Flights:    flights,
		User:       user,
		Success:    r.URL.Query().Get("success"),
		Error:      r.URL.Query().Get("error"),
		SearchTerm: term,
	})
}

// Search is the standalone results page. A blank term behaves like the
// list view and shows everything; only the JSON endpoint rejects it.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	term := r.URL.Query().Get("q")

	flights, err := h.Store.List(user.ID, term)
	if err != nil {
		logger.L.Error().Err(err).Msg("search: store read failed")
		h.Pages.Render(w, "info.html", infoPage{Message: "Something went wrong", User: user})
		return
	}

	h.Pages.Render(w, "search.html", searchPage{
		Flights:      flights,
		User:         user,
		SearchTerm:   term,
		ResultsCount: len(flights),
	})
}

func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	flight, err := h.Store.FindByID(user.ID, r.URL.Query().Get("_id"))
	if err != nil {
		// Misses and store failures render the same inline page.
		h.Pages.Render(w, "info.html", infoPage{Message: "Flight not found", User: user})
		return
	}

	page := flightPage{Flight: flight, User: user}
	if flight.Photo != "" {
		page.PhotoSrc = template.URL("data:image;base64," + flight.Photo)
	}
	h.Pages.Render(w, "details.html", page)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	in, err := ParseInput(r)
	if err != nil {
		redirectError(w, r, "Failed to read uploaded photo")
		return
	}

	flight := in.NewFlight(user.ID)
	if err := h.Store.Create(&flight); err != nil {
		logger.L.Error().Err(err).Msg("create: store write failed")
		redirectError(w, r, "Failed to add flight")
		return
	}

	redirectSuccess(w, r, "Flight added successfully")
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	flight, err := h.Store.FindByID(user.ID, r.URL.Query().Get("_id"))
	if err != nil {
		h.Pages.Render(w, "info.html", infoPage{Message: "Access denied", User: user})
		return
	}

	h.Pages.Render(w, "edit.html", flightPage{Flight: flight, User: user})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	in, err := ParseInput(r)
	if err != nil {
		redirectError(w, r, "Failed to read uploaded photo")
		return
	}

	// Zero rows affected means a non-owned or unknown id: a no-op.
	if _, err := h.Store.UpdateByID(user.ID, chi.URLParam(r, "id"), in.Updates()); err != nil {
		logger.L.Error().Err(err).Msg("update: store write failed")
		redirectError(w, r, "Failed to update flight")
		return
	}

	redirectSuccess(w, r, "Flight updated")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	if _, err := h.Store.DeleteByNumber(user.ID, chi.URLParam(r, "flightNumber")); err != nil {
		logger.L.Error().Err(err).Msg("delete: store write failed")
		redirectError(w, r, "Failed to delete flight")
		return
	}

	redirectSuccess(w, r, "Flight deleted")
}

func (h *Handler) APITest(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, "api-test.html", infoPage{User: userFrom(r.Context())})
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/list", http.StatusFound)
}

// NotFoundPage is the catch-all. It renders with or without a session.
func (h *Handler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, "info.html", infoPage{Message: "Page not found", User: userFrom(r.Context())})
}
