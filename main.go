package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/khabaroff/jwt-auth-web/src/config"
	"github.com/khabaroff/jwt-auth-web/src/handlers"
	"github.com/khabaroff/jwt-auth-web/src/logging"
	"github.com/khabaroff/jwt-auth-web/src/middleware"
	"github.com/khabaroff/jwt-auth-web/src/services"
	"github.com/khabaroff/jwt-auth-web/src/templates"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logging
	logging.Setup(logging.Config{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Service:     "jwt-auth-web",
		Environment: cfg.Environment,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("api_url", cfg.APIURL).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	sessions, err := services.NewSessionService(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize session service")
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse page templates")
	}
	content, err := templates.LoadContent()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load page content")
	}

	// Backend API clients
	directory := services.NewUserDirectoryClient(cfg.APIURL, cfg.APITimeout)
	authClient := services.NewAuthClient(cfg.APIURL, cfg.APITimeout)

	// Initialize Analytics Service
	analyticsService, err := services.NewAnalyticsService(services.AnalyticsConfig{
		PostHogAPIKey: cfg.PostHogAPIKey,
		PostHogHost:   cfg.PostHogHost,
		Enabled:       cfg.PostHogEnabled,
		Environment:   cfg.Environment,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize analytics service")
	}
	defer analyticsService.Close()

	if analyticsService.Enabled() {
		log.Info().Str("host", cfg.PostHogHost).Msg("PostHog analytics enabled")
	} else {
		log.Info().Msg("PostHog analytics disabled")
	}

	authLimiter := middleware.NewIPRateLimiter(middleware.RateLimitConfig{
		RequestsPerMinute: cfg.AuthRateLimitPerMinute,
		Burst:             3,
	})

	cookie := middleware.CookieConfig{
		Secure: cfg.CookieSecure,
		MaxAge: int(sessions.TTL().Seconds()),
	}

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.Use(middleware.SessionMiddleware(sessions, cookie))

	handlers.Routes{
		Home:        handlers.NewHomeHandler(renderer, content),
		Dashboard:   handlers.NewDashboardHandler(renderer, content, analyticsService),
		Admin:       handlers.NewAdminHandler(renderer, directory, analyticsService, cfg.APITimeout),
		Auth:        handlers.NewAuthHandler(renderer, authClient, sessions, cookie, analyticsService, cfg.APITimeout),
		Health:      handlers.NewHealthHandler(directory),
		AuthLimiter: authLimiter,
	}.Register(router)

	// Create HTTP server with timeouts (G112: protect from Slowloris attack)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.APITimeout + 20*time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	authLimiter.Stop()

	log.Info().Msg("server shut down successfully")
}
