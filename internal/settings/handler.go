package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// Handler handles the admin settings endpoints
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new settings handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// Get handles GET /admin/settings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Update handles PUT /admin/settings.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.repo.Update(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidBuffer) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to update settings", "error", err)
		http.Error(w, "failed to update settings", http.StatusInternalServerError)
		return
	}

	h.logger.Info("settings updated", "buffer_minutes", s.BufferMinutes)
	writeJSON(w, http.StatusOK, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
