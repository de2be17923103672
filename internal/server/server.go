// Package server is the composition root: it opens the configured store,
// builds services and handlers on top of it, and mounts them on a chi
// router with the shared middleware.
//
// Dependency chain:
//
//	config → Store (sqlite | postgres) → ThreadService, CommentService → handlers → routes
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/forum-api/internal/auth"
	"github.com/sakif/forum-api/internal/config"
	"github.com/sakif/forum-api/internal/handler"
	"github.com/sakif/forum-api/internal/middleware"
	"github.com/sakif/forum-api/internal/repository"
	"github.com/sakif/forum-api/internal/repository/postgres"
	"github.com/sakif/forum-api/internal/repository/sqlite"
	"github.com/sakif/forum-api/internal/service"
)

const shutdownTimeout = 30 * time.Second

// Server owns the store and the router. The store is closed when Start
// returns.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  repository.Store
	tokens *auth.TokenService

	// stops background work such as rate limiter cleanup
	cancel context.CancelFunc
}

// OpenStore opens the store selected by cfg.Driver.
func OpenStore(cfg config.DatabaseConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if cfg.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqlite.New(cfg.Path, nil)
		if err != nil {
			return nil, err
		}
		return db, nil
	case config.DriverPostgres:
		db, err := postgres.New(postgres.Config{
			Host:     cfg.Host,
			Port:     cfg.Port,
			User:     cfg.User,
			Password: cfg.Password,
			DBName:   cfg.DBName,
			SSLMode:  cfg.SSLMode,
		}, nil)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// New opens the configured store and wires the application on top of it.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := newWithStore(cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

func newWithStore(cfg *config.Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.Auth.AccessTokenKey, cfg.Auth.AccessTokenAge)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
		tokens: tokens,
		cancel: cancel,
	}
	s.setupRoutes(ctx)
	return s, nil
}

// setupRoutes mounts:
//
//	GET    /                                        → greeting
//	GET    /about                                   → version
//	GET    /health                                  → store ping
//	GET    /metrics                                 → Prometheus
//	POST   /threads                                 → add thread      (auth)
//	GET    /threads/{threadId}                      → thread detail
//	POST   /threads/{threadId}/comments             → add comment     (auth)
//	DELETE /threads/{threadId}/comments/{commentId} → delete comment  (auth)
//
// Write routes are rate limited per client before the token is checked.
func (s *Server) setupRoutes(ctx context.Context) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(metrics.Middleware)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.MethodNotAllowed)

	sanitizer := handler.NewSanitizer(s.config.Server.SanitizeHTML)
	threadService := service.NewThreadService(s.store, s.store, s.logger)
	commentService := service.NewCommentService(s.store, s.store, s.logger)

	rootHandler := handler.NewRootHandler(s.store, s.logger)
	threadHandler := handler.NewThreadHandler(threadService, sanitizer, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, sanitizer, s.logger)

	s.router.Get("/", rootHandler.HandleIndex)
	s.router.Get("/about", rootHandler.HandleAbout)
	s.router.Get("/health", rootHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))

	s.router.Get("/threads/{threadId}", threadHandler.HandleGet)

	s.router.Group(func(r chi.Router) {
		if rl := s.config.RateLimit; rl.RequestsPerMinute > 0 {
			r.Use(middleware.NewRateLimiter(ctx, rl.RequestsPerMinute, rl.Burst).Middleware)
		}
		r.Use(auth.RequireAuth(s.tokens))

		r.Post("/threads", threadHandler.HandleCreate)
		r.Post("/threads/{threadId}/comments", commentHandler.HandleCreate)
		r.Delete("/threads/{threadId}/comments/{commentId}", commentHandler.HandleDelete)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close stops background work and closes the store.
func (s *Server) Close() error {
	s.cancel()
	return s.store.Close()
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to 30 seconds and closes the store.
func (s *Server) Start() error {
	defer s.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("database", s.config.Database.Driver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
