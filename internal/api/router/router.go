package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/serenity-studio/booking-platform/internal/auth"
	"github.com/serenity-studio/booking-platform/internal/availability"
	"github.com/serenity-studio/booking-platform/internal/bookings"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	httpmiddleware "github.com/serenity-studio/booking-platform/internal/http/middleware"
	"github.com/serenity-studio/booking-platform/internal/settings"
	"github.com/serenity-studio/booking-platform/internal/testimonials"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	CatalogHandler      *catalog.Handler
	SettingsHandler     *settings.Handler
	AvailabilityHandler *availability.Handler
	BookingsHandler     *bookings.Handler
	TestimonialsHandler *testimonials.Handler
	AuthHandler         *auth.Handler
	AdminAuthSecret     string
	MetricsHandler      http.Handler
	RateLimiter         *httpmiddleware.RedisRateLimiter
	CORSAllowedOrigins  []string
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints.
	r.Group(func(public chi.Router) {
		if cfg.RateLimiter != nil {
			public.Use(cfg.RateLimiter.Middleware(cfg.Logger))
		}

		public.Get("/health", healthCheck)

		public.Route("/api", func(api chi.Router) {
			api.Get("/services", cfg.CatalogHandler.ListActive)
			api.Get("/slots", cfg.BookingsHandler.GetSlots)
			api.Post("/bookings", cfg.BookingsHandler.Create)
			api.Get("/testimonials", cfg.TestimonialsHandler.ListApproved)
			if cfg.AuthHandler != nil {
				api.Post("/auth/login", cfg.AuthHandler.Login)
				api.Post("/auth/logout", cfg.AuthHandler.Logout)
			}
		})

		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin endpoints, gated by the session JWT.
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

		admin.Route("/services", func(r chi.Router) {
			r.Get("/", cfg.CatalogHandler.ListAll)
			r.Post("/", cfg.CatalogHandler.Create)
			r.Put("/{serviceID}", cfg.CatalogHandler.Update)
			r.Delete("/{serviceID}", cfg.CatalogHandler.Delete)
		})

		admin.Route("/settings", func(r chi.Router) {
			r.Get("/", cfg.SettingsHandler.Get)
			r.Put("/", cfg.SettingsHandler.Update)
		})

		admin.Route("/availability", func(r chi.Router) {
			r.Get("/", cfg.AvailabilityHandler.List)
			r.Put("/{weekday}", cfg.AvailabilityHandler.Upsert)
		})

		admin.Route("/bookings", func(r chi.Router) {
			r.Get("/", cfg.BookingsHandler.List)
			r.Patch("/{bookingID}/status", cfg.BookingsHandler.UpdateStatus)
			r.Delete("/{bookingID}", cfg.BookingsHandler.Delete)
		})

		admin.Route("/testimonials", func(r chi.Router) {
			r.Get("/", cfg.TestimonialsHandler.ListAll)
			r.Post("/", cfg.TestimonialsHandler.Create)
			r.Put("/{testimonialID}", cfg.TestimonialsHandler.Update)
			r.Delete("/{testimonialID}", cfg.TestimonialsHandler.Delete)
		})
	})

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
