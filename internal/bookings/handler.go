package bookings

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/serenity-studio/booking-platform/internal/schedule"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// Handler handles HTTP requests for slots and bookings
type Handler struct {
	service *Service
	logger  *logging.Logger
	now     func() time.Time
}

// NewHandler creates a new bookings handler
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger, now: time.Now}
}

type slotsResponse struct {
	Date      string   `json:"date"`
	ServiceID string   `json:"service_id"`
	Slots     []string `json:"slots"`
}

// GetSlots handles GET /api/slots?date=YYYY-MM-DD&service_id=…
func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	serviceID := r.URL.Query().Get("service_id")
	if date == "" || serviceID == "" {
		http.Error(w, "date and service_id are required", http.StatusBadRequest)
		return
	}

	slots, err := h.service.Slots(r.Context(), date, serviceID, h.now().UTC())
	if err != nil {
		if IsRejection(err) || isDateParseError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to compute slots", "error", err, "date", date, "service_id", serviceID)
		http.Error(w, "failed to compute slots", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, slotsResponse{Date: date, ServiceID: serviceID, Slots: slots})
}

// Create handles POST /api/bookings, the public booking form.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.service.Admit(r.Context(), &req)
	if err != nil {
		h.writeRejection(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, booking)
}

// List handles GET /admin/bookings?date=YYYY-MM-DD.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}

	list, err := h.service.ListDay(r.Context(), date)
	if err != nil {
		if isDateParseError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to list bookings", "error", err, "date", date)
		http.Error(w, "failed to list bookings", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []*Booking{}
	}
	writeJSON(w, http.StatusOK, list)
}

// UpdateStatus handles PATCH /admin/bookings/{bookingID}/status.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	booking, err := h.service.Transition(r.Context(), id, req.Status)
	if err != nil {
		h.writeRejection(w, err)
		return
	}

	writeJSON(w, http.StatusOK, booking)
}

// Delete handles DELETE /admin/bookings/{bookingID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingID")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to delete booking", "error", err, "booking_id", id)
		http.Error(w, "failed to delete booking", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeRejection maps the admission taxonomy onto HTTP statuses.
func (h *Handler) writeRejection(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingName),
		errors.Is(err, ErrMissingPhone),
		errors.Is(err, ErrMissingService),
		errors.Is(err, ErrMissingStart),
		errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrSlotTaken):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrBookingNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, schedule.ErrServiceUnavailable),
		errors.Is(err, schedule.ErrDayClosed),
		errors.Is(err, schedule.ErrOutsideBusinessHours):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		h.logger.Error("booking operation failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func isDateParseError(err error) bool {
	var parseErr *time.ParseError
	return errors.As(err, &parseErr)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
