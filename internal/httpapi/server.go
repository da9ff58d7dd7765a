package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/config"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/pipeline"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/storage"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/internal/tracker"
	"github.com/ZeeshanBashir475/myaiapplication-sub000/pkg/logger"
)

// Server is the HTTP front end over the generation pipeline
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	pipe       *pipeline.Pipeline
	registry   *pipeline.Registry
	repo       storage.Repository
	tracker    *tracker.SheetsTracker // nil when disabled
	results    *gocache.Cache         // recent results for /api/chat follow-ups
	validate   *validator.Validate
	config     config.ServerConfig
	log        *logger.Logger
}

// New creates a new HTTP server instance
func New(cfg config.ServerConfig, pipe *pipeline.Pipeline, registry *pipeline.Registry, repo storage.Repository, trk *tracker.SheetsTracker, log *logger.Logger) *Server {
	cacheTTL := parseDurationOr(cfg.ResultCacheTTL, time.Hour)

	s := &Server{
		router:   chi.NewRouter(),
		pipe:     pipe,
		registry: registry,
		repo:     repo,
		tracker:  trk,
		results:  gocache.New(cacheTTL, 10*time.Minute),
		validate: validator.New(),
		config:   cfg,
		log:      log.WithComponent("http"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  parseDurationOr(cfg.ReadTimeout, 30*time.Second),
		WriteTimeout: parseDurationOr(cfg.WriteTimeout, 120*time.Second),
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	if s.config.CORSEnabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

func (s *Server) setupRoutes() {
	// Web routes (HTML pages)
	s.router.Get("/", s.handleIndex)
	s.router.Post("/generate", s.handleGenerate)

	s.router.Get("/health", s.handleHealth)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.handleChat)
		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
		})
	})
}

// Start starts the HTTP server. Blocks until shutdown or failure.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("Starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}

func parseDurationOr(v string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
