package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/feral-file/ff-lead-analytics/internal/api/middleware"
	"github.com/feral-file/ff-lead-analytics/internal/api/rest"
	"github.com/feral-file/ff-lead-analytics/internal/api/shared/executor"
	"github.com/feral-file/ff-lead-analytics/internal/logger"
	"github.com/feral-file/ff-lead-analytics/internal/session"
)

// Config holds the server configuration
type Config struct {
	Debug          bool
	Host           string
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	ListingBaseURL string
	AllowedOrigins []string
	Auth           middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	executor   executor.Executor
	resolver   *session.Resolver
	httpServer *http.Server
}

// New creates a new API server
func New(cfg Config, exec executor.Executor, resolver *session.Resolver) *Server {
	return &Server{
		config:   cfg,
		executor: exec,
		resolver: resolver,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			ErrorLog:     zap.NewStdLog(logger.Default()),
		},
	}
}

// Router builds the gin engine with middleware and routes
func (s *Server) Router() (*gin.Engine, error) {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	auth, err := middleware.NewAuthenticator(s.config.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	router := gin.New()

	// Setup middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS(s.config.AllowedOrigins))

	// Setup REST routes
	restHandler := rest.NewHandler(s.config.Debug, s.executor, s.resolver, s.config.ListingBaseURL)
	rest.SetupRoutes(router, restHandler, auth)

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router, nil
}

// Start initializes and starts the HTTP server.
// It returns nil once Shutdown has been called, even if that happened first.
func (s *Server) Start() error {
	router, err := s.Router()
	if err != nil {
		return err
	}
	s.httpServer.Handler = router

	logger.Info("Starting API server",
		zap.String("address", s.httpServer.Addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down API server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
