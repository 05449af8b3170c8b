package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/serenity-studio/booking-platform/internal/api/router"
	"github.com/serenity-studio/booking-platform/internal/auth"
	"github.com/serenity-studio/booking-platform/internal/availability"
	"github.com/serenity-studio/booking-platform/internal/bookings"
	"github.com/serenity-studio/booking-platform/internal/catalog"
	appconfig "github.com/serenity-studio/booking-platform/internal/config"
	httpmiddleware "github.com/serenity-studio/booking-platform/internal/http/middleware"
	"github.com/serenity-studio/booking-platform/internal/notify"
	"github.com/serenity-studio/booking-platform/internal/observability/metrics"
	"github.com/serenity-studio/booking-platform/internal/schedule"
	"github.com/serenity-studio/booking-platform/internal/settings"
	"github.com/serenity-studio/booking-platform/internal/testimonials"
	"github.com/serenity-studio/booking-platform/internal/timezone"
	"github.com/serenity-studio/booking-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Repositories: Postgres when DATABASE_URL is set, in-memory otherwise
	// so local development works without a database.
	var (
		catalogRepo      catalog.Repository
		settingsRepo     settings.Repository
		availabilityRepo availability.Repository
		bookingRepo      bookings.Repository
		testimonialRepo  testimonials.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create database pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			logger.Error("failed to reach database", "error", err)
			os.Exit(1)
		}
		catalogRepo = catalog.NewPostgresRepository(pool)
		settingsRepo = settings.NewPostgresRepository(pool)
		availabilityRepo = availability.NewPostgresRepository(pool)
		bookingRepo = bookings.NewPostgresRepository(pool)
		testimonialRepo = testimonials.NewPostgresRepository(pool)
		logger.Info("using postgres repositories")
	} else {
		catalogRepo = catalog.NewInMemoryRepository()
		settingsRepo = settings.NewInMemoryRepository()
		availabilityRepo = availability.NewInMemoryRepository()
		bookingRepo = bookings.NewInMemoryRepository()
		testimonialRepo = testimonials.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory repositories")
	}

	studio := timezone.NewStudio(cfg.StudioTimezone)
	scheduleSvc := schedule.NewService(catalogRepo, settingsRepo, availabilityRepo, bookingRepo, studio, logger)

	// Metrics registry with process and Go runtime collectors.
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	var emailSender notify.EmailSender
	if cfg.SendGridAPIKey != "" {
		emailSender = notify.NewSendGridSender(notify.SendGridConfig{
			APIKey:    cfg.SendGridAPIKey,
			FromEmail: cfg.SendGridFromEmail,
			FromName:  cfg.SendGridFromName,
		}, logger)
	}
	notifier := notify.NewBookingNotifier(emailSender, catalogRepo, studio, cfg.SendGridFromName, logger)

	bookingSvc := bookings.NewService(bookingRepo, scheduleSvc, notifier, bookingMetrics, logger)

	var rateLimiter *httpmiddleware.RedisRateLimiter
	if cfg.RateLimitEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		defer rdb.Close()
		rateLimiter = httpmiddleware.NewRedisRateLimiter(rdb, cfg.RateLimitPerMin, time.Minute, "booking")
	}

	authSvc := auth.NewService(cfg.AdminEmail, cfg.AdminPasswordHash, cfg.AdminJWTSecret, cfg.SessionTTL)
	if !authSvc.Enabled() {
		logger.Warn("admin auth not fully configured, admin endpoints will reject all requests")
	}
	authHandler := auth.NewHandler(authSvc, logger, cfg.Env == "production")

	r := router.New(&router.Config{
		Logger:              logger,
		CatalogHandler:      catalog.NewHandler(catalogRepo, logger),
		SettingsHandler:     settings.NewHandler(settingsRepo, logger),
		AvailabilityHandler: availability.NewHandler(availabilityRepo, logger),
		BookingsHandler:     bookings.NewHandler(bookingSvc, logger),
		TestimonialsHandler: testimonials.NewHandler(testimonialRepo, logger),
		AuthHandler:         authHandler,
		AdminAuthSecret:     cfg.AdminJWTSecret,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		RateLimiter:         rateLimiter,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
