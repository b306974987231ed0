package handlers

import (
	"context"
	"net/http"
	"time"

	"portfolio/metrics"
	"portfolio/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

type RouterConfig struct {
	Auth     Authenticator
	Profiles ProfileService
	Projects ProjectService

	Authenticator *middleware.Authenticator
	AuthLimiter   *middleware.RateLimiter
	Metrics       *metrics.Collector
	Gatherer      prometheus.Gatherer

	// Ping backs /healthz.
	Ping func(ctx context.Context) error

	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *chi.Mux {
	authHandler := NewAuthHandler(cfg.Auth, cfg.Metrics)
	userHandler := NewUserHandler(cfg.Profiles)
	projectHandler := NewProjectHandler(cfg.Projects)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestLogger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cfg.Metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := cfg.Ping(ctx); err != nil {
			middleware.WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unreachable")
			return
		}
		writeText(w, http.StatusOK, "ok")
	})
	router.Handle("/metrics", metrics.Handler(cfg.Gatherer))

	router.Route("/api", func(r chi.Router) {
		r.Use(cfg.Authenticator.Authenticate)

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(cfg.AuthLimiter.Middleware)
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.With(middleware.RequireUser).Get("/protected", authHandler.Protected)
		})

		// Everything below needs an identity
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)

			r.Get("/user/me", userHandler.GetMe)
			r.Put("/user/me", userHandler.UpdateMe)
			r.Delete("/user/me", userHandler.DeleteMe)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.List)
				r.Post("/", projectHandler.Create)
				r.Get("/{id}", projectHandler.Get)
				r.Put("/{id}", projectHandler.Update)
				r.Delete("/{id}", projectHandler.Delete)
			})
		})
	})

	return router
}
