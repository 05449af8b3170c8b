package testimonials

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for testimonials
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new testimonials handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// ListApproved handles GET /api/testimonials.
func (h *Handler) ListApproved(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context(), true)
	if err != nil {
		h.logger.Error("failed to list testimonials", "error", err)
		http.Error(w, "failed to list testimonials", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// ListAll handles GET /admin/testimonials, including unapproved entries.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.List(r.Context(), false)
	if err != nil {
		h.logger.Error("failed to list testimonials", "error", err)
		http.Error(w, "failed to list testimonials", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Create handles POST /admin/testimonials.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed to create testimonial", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /admin/testimonials/{testimonialID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "testimonialID")

	var req UpsertTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrTestimonialNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /admin/testimonials/{testimonialID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "testimonialID")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrTestimonialNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete testimonial", "error", err, "id", id)
		http.Error(w, "failed to delete testimonial", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
