package flights

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/FlightLedger/FL-Backend/internal/logger"
	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Unexpected store or upload failures get a 500; expected misses stay
// 200 with an error field, which is what API consumers have always seen.
func writeServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   message,
	})
}

func (h *Handler) APICreate(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	in, err := ParseInput(r)
	if err != nil {
		writeServerError(w, "Failed to read uploaded photo")
		return
	}

	flight := in.NewFlight(user.ID)
	if err := h.Store.Create(&flight); err != nil {
		logger.L.Error().Err(err).Msg("api create: store write failed")
		writeServerError(w, "Failed to add flight")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": flight.ID})
}

func (h *Handler) APIList(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	flights, err := h.Store.List(user.ID, "")
	if err != nil {
		logger.L.Error().Err(err).Msg("api list: store read failed")
		writeServerError(w, "Failed to load flights")
		return
	}
	if flights == nil {
		flights = []Flight{}
	}

	writeJSON(w, http.StatusOK, flights)
}

func (h *Handler) APIGet(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	flight, err := h.Store.FindByNumber(user.ID, chi.URLParam(r, "flightNumber"))
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusOK, map[string]any{"error": "Not found"})
		return
	}
	if err != nil {
		logger.L.Error().Err(err).Msg("api get: store read failed")
		writeServerError(w, "Failed to load flight")
		return
	}

	writeJSON(w, http.StatusOK, flight)
}

func (h *Handler) APIUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	in, err := ParseInput(r)
	if err != nil {
		writeServerError(w, "Failed to read uploaded photo")
		return
	}

	rows, err := h.Store.UpdateByNumber(user.ID, chi.URLParam(r, "flightNumber"), in.Updates())
	if err != nil {
		logger.L.Error().Err(err).Msg("api update: store write failed")
		writeServerError(w, "Failed to update flight")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": rows > 0})
}

func (h *Handler) APIDelete(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	rows, err := h.Store.DeleteByNumber(user.ID, chi.URLParam(r, "flightNumber"))
	if err != nil {
		logger.L.Error().Err(err).Msg("api delete: store write failed")
		writeServerError(w, "Failed to delete flight")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": rows > 0})
}

// APISearch rejects a blank query instead of returning everything,
// unlike the list-embedded search. Deliberate divergence.
func (h *Handler) APISearch(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	term := r.URL.Query().Get("q")
	if strings.TrimSpace(term) == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "Search term is required",
		})
		return
	}

	flights, err := h.Store.List(user.ID, term)
	if err != nil {
		logger.L.Error().Err(err).Msg("api search: store read failed")
		writeServerError(w, "Search failed")
		return
	}
	if flights == nil {
		flights = []Flight{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"count":      len(flights),
		"searchTerm": term,
		"data":       flights,
	})
}
