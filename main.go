package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio/config"
	"portfolio/database"
	"portfolio/handlers"
	"portfolio/logger"
	"portfolio/metrics"
	"portfolio/middleware"
	"portfolio/services"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Init("info", true)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogPretty)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
	log.Info().Msg("Server exited")
}

// run owns every resource with a cleanup step, so its defers fire on all
// exit paths before main decides the exit status.
func run(cfg *config.Config) error {
	// Signing key
	key := []byte(cfg.JWTSecret)
	if len(key) == 0 {
		var err error
		key, err = services.GenerateSigningKey()
		if err != nil {
			return fmt.Errorf("generate signing key: %w", err)
		}
		log.Warn().Msg("JWT_SECRET not set, using a random key; tokens will not survive a restart")
	}
	tokens, err := services.NewTokenService(key, cfg.JWTExpiration)
	if err != nil {
		return fmt.Errorf("token service: %w", err)
	}

	// Initialize database
	db, err := database.Open(cfg.DatabaseURL, cfg.DBLogLevel)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	users := database.NewUserStore(db)
	projects := database.NewProjectStore(db)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	limiter := middleware.NewRateLimiter(middleware.PerMinute(cfg.LoginRatePerMinute, cfg.LoginRateBurst), collector)
	defer limiter.Stop()

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:           services.NewAuthService(users, tokens, cfg.BcryptCost),
		Profiles:       services.NewProfileService(users),
		Projects:       services.NewProjectService(projects),
		Authenticator:  middleware.NewAuthenticator(tokens, collector),
		AuthLimiter:    limiter,
		Metrics:        collector,
		Gatherer:       registry,
		Ping:           func(ctx context.Context) error { return database.Ping(ctx, db) },
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	log.Info().Str("port", cfg.ServerPort).Dur("token_ttl", tokens.TTL()).Msg("Server starting")
	return serve(server, quit)
}

// serve runs server until it fails or a signal arrives on quit, then shuts
// it down gracefully.
func serve(server *http.Server, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
