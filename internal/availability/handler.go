package availability

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// Handler handles the admin availability endpoints
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new availability handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /admin/availability.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	windows, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list availability", "error", err)
		http.Error(w, "failed to list availability", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, windows)
}

// Upsert handles PUT /admin/availability/{weekday}.
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	weekday, err := strconv.Atoi(chi.URLParam(r, "weekday"))
	if err != nil {
		http.Error(w, ErrInvalidWeekday.Error(), http.StatusBadRequest)
		return
	}

	var req UpsertWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	window, err := h.repo.Upsert(r.Context(), weekday, &req)
	if err != nil {
		if errors.Is(err, ErrInvalidWeekday) || errors.Is(err, ErrInvalidHours) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to upsert availability", "error", err, "weekday", weekday)
		http.Error(w, "failed to save availability", http.StatusInternalServerError)
		return
	}

	h.logger.Info("availability updated",
		"weekday", window.Weekday,
		"open_hour", window.OpenHour,
		"close_hour", window.CloseHour,
		"active", window.Active,
	)
	writeJSON(w, http.StatusOK, window)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
