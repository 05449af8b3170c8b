package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serenity-studio/booking-platform/internal/auth"
	"github.com/serenity-studio/booking-platform/internal/availability"
	"github.com/serenity-studio/booking-platform/internal/bookings"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	"github.com/serenity-studio/booking-platform/internal/schedule"
	"github.com/serenity-studio/booking-platform/internal/settings"
	"github.com/serenity-studio/booking-platform/internal/testimonials"
	"github.com/serenity-studio/booking-platform/internal/timezone"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

const testAdminSecret = "router-test-secret"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cat := catalog.NewInMemoryRepository()
	_, err := cat.Create(context.Background(), &catalog.UpsertServiceRequest{
		Name:            "Relaxing Massage",
		PriceCents:      12000,
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	set := settings.NewInMemoryRepository()
	avail := availability.NewInMemoryRepository()
	bookingRepo := bookings.NewInMemoryRepository()
	testimonialRepo := testimonials.NewInMemoryRepository()

	studio := timezone.NewStudio("UTC")
	sched := schedule.NewService(cat, set, avail, bookingRepo, studio, nil)
	bookingSvc := bookings.NewService(bookingRepo, sched, nil, nil, nil)

	logger := logging.New("error")
	return New(&Config{
		Logger:              logger,
		CatalogHandler:      catalog.NewHandler(cat, logger),
		SettingsHandler:     settings.NewHandler(set, logger),
		AvailabilityHandler: availability.NewHandler(avail, logger),
		BookingsHandler:     bookings.NewHandler(bookingSvc, logger),
		TestimonialsHandler: testimonials.NewHandler(testimonialRepo, logger),
		AdminAuthSecret:     testAdminSecret,
	})
}

func adminCookie(t *testing.T) *http.Cookie {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "admin@serenity.studio",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAdminSecret))
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookie, Value: signed}
}

func TestPublicRoutes(t *testing.T) {
	handler := newTestRouter(t)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/services", http.StatusOK},
		{http.MethodGet, "/api/testimonials", http.StatusOK},
		{http.MethodGet, "/api/slots?date=2025-03-10&service_id=missing", http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	handler := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/admin/services"},
		{http.MethodGet, "/admin/settings"},
		{http.MethodGet, "/admin/availability"},
		{http.MethodGet, "/admin/bookings?date=2025-03-10"},
		{http.MethodGet, "/admin/testimonials"},
	}
	for _, tc := range paths {
		t.Run(tc.path, func(t *testing.T) {
			r := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAdminRoutesWithSession(t *testing.T) {
	handler := newTestRouter(t)
	cookie := adminCookie(t)

	r := httptest.NewRequest(http.MethodGet, "/admin/services", nil)
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Relaxing Massage")

	r = httptest.NewRequest(http.MethodGet, "/admin/settings", nil)
	r.AddCookie(cookie)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "buffer_minutes")
}

func TestBookingFlowThroughRouter(t *testing.T) {
	handler := newTestRouter(t)
	cookie := adminCookie(t)

	// Open Mondays 9-18 via the admin surface.
	body := `{"open_hour": 9, "close_hour": 18, "active": true}`
	r := httptest.NewRequest(http.MethodPut, "/admin/availability/1", strings.NewReader(body))
	r.AddCookie(cookie)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	// The public slots feed now reflects the window.
	r = httptest.NewRequest(http.MethodGet, "/api/slots?date=2099-03-09&service_id=missing", nil)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	// Unknown service degrades to an empty list, not an error.
	assert.JSONEq(t, `{"date":"2099-03-09","service_id":"missing","slots":[]}`, w.Body.String())
}
