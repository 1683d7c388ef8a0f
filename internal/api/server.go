package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/recurscan/internal/api/handlers"
	"github.com/eshaffer321/recurscan/internal/api/middleware"
	"github.com/eshaffer321/recurscan/internal/application/service"
	"github.com/eshaffer321/recurscan/internal/infrastructure/config"
	"github.com/eshaffer321/recurscan/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// ConfigFrom maps the application API settings onto a server config.
func ConfigFrom(cfg config.APIConfig) Config {
	out := DefaultConfig()
	if cfg.Port > 0 {
		out.Port = cfg.Port
	}
	if len(cfg.AllowedOrigins) > 0 {
		out.AllowedOrigins = cfg.AllowedOrigins
	}
	return out
}

// Server is the HTTP API server.
type Server struct {
	config         Config
	router         *gin.Engine
	httpServer     *http.Server
	logger         *slog.Logger
	repo           storage.Repository
	featureService *service.FeatureService
}

// NewServer creates a new API server.
// If featureService is nil, extraction endpoints will not be available.
func NewServer(cfg Config, repo storage.Repository, featureService *service.FeatureService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		config:         cfg,
		router:         gin.New(),
		logger:         logger,
		repo:           repo,
		featureService: featureService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())

	s.router.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
	}))

	// Request logging
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.GET("/health", healthHandler.Get)

	api := s.router.Group("/api")
	{
		var runner handlers.RunCreator
		if s.featureService != nil {
			featuresHandler := handlers.NewFeaturesHandler(s.featureService)
			api.POST("/features", featuresHandler.Compute)
			runner = s.featureService
		}

		runsHandler := handlers.NewRunsHandler(s.repo, runner)
		api.GET("/runs", runsHandler.List)
		api.GET("/runs/:id", runsHandler.Get)
		api.GET("/runs/:id/features", runsHandler.Features)
		if runner != nil {
			api.POST("/runs", runsHandler.Create)
		}
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin engine for testing.
func (s *Server) Router() http.Handler {
	return s.router
}
