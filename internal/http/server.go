// Package http provides the HTTP server, its router and the health endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/notes/internal/auth/http"
	authUseCase "github.com/allisson/notes/internal/auth/usecase"
	"github.com/allisson/notes/internal/config"
	"github.com/allisson/notes/internal/metrics"
	noteHTTP "github.com/allisson/notes/internal/note/http"
)

// APIPrefix is the path every API route is mounted under.
const APIPrefix = "/api/tiny-note"

const readinessTimeout = 2 * time.Second

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	cache  Pinger
	server *http.Server
	logger *slog.Logger
	router *gin.Engine
}

// NewServer creates a new HTTP server. db and cache are checked by the
// readiness endpoint; either may be nil, in which case it reports not ready.
func NewServer(
	db *sql.DB,
	cache Pinger,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		cache:  cache,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the router with all middleware and routes.
// ctx bounds background work started by middleware, such as the rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	sessionHandler *authHTTP.SessionHandler,
	noteHandler *noteHTTP.NoteHandler,
	sessionUseCase authUseCase.SessionUseCase,
	metricsProvider *metrics.Provider,
	businessMetrics metrics.BusinessMetrics,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	api := router.Group(APIPrefix)
	api.GET("/health", s.healthHandler)
	api.GET("/ready", s.readinessHandler)

	authenticated := authHTTP.AuthenticationMiddleware(sessionUseCase, businessMetrics, s.logger)

	// Register and login share one per-IP limiter.
	var loginLimiter gin.HandlerFunc
	if cfg.RateLimitLoginEnabled {
		loginLimiter = authHTTP.LoginRateLimitMiddleware(
			ctx,
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		)
	}

	loginLimited := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if !cfg.RateLimitLoginEnabled {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{loginLimiter, handler}
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", loginLimited(sessionHandler.RegisterHandler)...)
		auth.POST("/login", loginLimited(sessionHandler.LoginHandler)...)
		auth.POST("/logout", sessionHandler.LogoutHandler)
		auth.GET("/me", authenticated, sessionHandler.MeHandler)
	}

	notes := api.Group("/notes", authenticated)
	{
		notes.POST("", noteHandler.CreateHandler)
		notes.GET("", noteHandler.ListHandler)
		notes.GET("/:id", noteHandler.GetHandler)
		notes.PUT("/:id", noteHandler.UpdateHandler)
		notes.DELETE("/:id", noteHandler.DeleteHandler)
	}

	s.router = router
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports that the process is up.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the database and the revocation cache respond.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	components := gin.H{
		"database": "ok",
		"cache":    "ok",
	}
	ready := true

	if s.db == nil || s.db.PingContext(ctx) != nil {
		components["database"] = "error"
		ready = false
	}
	if s.cache == nil || s.cache.Ping(ctx) != nil {
		components["cache"] = "error"
		ready = false
	}

	if !ready {
		s.logger.Warn("readiness check failed", slog.Any("components", components))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
