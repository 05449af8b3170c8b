package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// Handler exposes the admin login and logout endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
	secure  bool
	now     func() time.Time
}

// NewHandler constructs an auth handler. secure controls the cookie's
// Secure attribute and should be true outside local development.
func NewHandler(service *Service, logger *logging.Logger, secure bool) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		secure:  secure,
		now:     time.Now,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.Authenticate(req.Email, req.Password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.logger.Warn("login rejected", "email", req.Email)
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.Error("login failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, expires, err := h.service.IssueToken(h.now())
	if err != nil {
		h.logger.Error("token issuance failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":     "ok",
		"expires_at": expires.UTC().Format(time.RFC3339),
	})
}

// Logout clears the session cookie.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
