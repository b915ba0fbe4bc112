// Package http provides HTTP server implementation and request handlers.
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
	otelmetric "go.opentelemetry.io/otel/metric"

	filesHTTP "github.com/allisson/courier/internal/files/http"
	identityHTTP "github.com/allisson/courier/internal/identity/http"
	identityService "github.com/allisson/courier/internal/identity/service"
	"github.com/allisson/courier/internal/metrics"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware settings used to assemble
// the API router.
type RouterConfig struct {
	PrincipalHandler *identityHTTP.PrincipalHandler
	FileHandler      *filesHTTP.FileHandler
	TokenService     identityService.TokenService

	MeterProvider    otelmetric.MeterProvider
	MetricsNamespace string

	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitEnabled bool
	RateLimitRPS     float64
	RateLimitBurst   int
}

// SetupRouter assembles the Gin router with middleware and all API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Public endpoints
	v1.POST("/principals", cfg.PrincipalHandler.RegisterHandler)
	v1.POST("/login", cfg.PrincipalHandler.LoginHandler)

	// Authenticated endpoints
	authenticated := v1.Group("")
	authenticated.Use(identityHTTP.AuthenticationMiddleware(cfg.TokenService, s.logger))
	if cfg.RateLimitEnabled {
		authenticated.Use(identityHTTP.RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, s.logger))
	}

	authenticated.GET("/me", cfg.PrincipalHandler.MeHandler)
	authenticated.GET("/recipients", cfg.PrincipalHandler.ListRecipientsHandler)

	authenticated.POST("/files", cfg.FileHandler.UploadHandler)
	authenticated.GET("/files", cfg.FileHandler.ListHandler)
	authenticated.GET("/files/:id", cfg.FileHandler.GetHandler)
	authenticated.GET("/files/:id/download", cfg.FileHandler.DownloadHandler)
	authenticated.POST("/files/:id/revoke", cfg.FileHandler.RevokeHandler)
	authenticated.GET("/files/:id/grantees", cfg.FileHandler.ListGranteesHandler)
	authenticated.GET("/files/:id/events", cfg.FileHandler.ListAuditEventsHandler)

	s.router = router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// is the only hard dependency checked here.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}

	if s.db == nil {
		components["database"] = "error"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
		} else {
			components["database"] = "ok"
		}
	}

	if components["database"] != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter before Start")
	}
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
