package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	approvalHTTP "github.com/f107110126/rpc-cap/internal/approval/http"
	"github.com/f107110126/rpc-cap/internal/config"
	"github.com/f107110126/rpc-cap/internal/metrics"
	permissionHTTP "github.com/f107110126/rpc-cap/internal/permission/http"
	rpcHTTP "github.com/f107110126/rpc-cap/internal/rpc/http"
)

// Server represents the HTTP server hosting the RPC endpoint and the admin
// API.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server with all routes mounted.
func NewServer(
	cfg *config.Config,
	logger *slog.Logger,
	meterProvider *metrics.Provider,
	rpcHandler *rpcHTTP.RPCHandler,
	permissionHandler *permissionHTTP.PermissionHandler,
	approvalHandler *approvalHTTP.ApprovalHandler,
) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MetricsEnabled && meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	// Health and readiness endpoints
	router.GET("/health", healthHandler)
	router.GET("/ready", readinessHandler)

	v1 := router.Group("/v1")
	{
		v1.POST("/rpc", rpcHandler.Handle)
		v1.GET("/domains/:domain/permissions", permissionHandler.ListHandler)
		v1.GET("/approvals", approvalHandler.ListHandler)
		v1.POST("/approvals/:id/decision", approvalHandler.DecideHandler)
	}

	return &Server{
		router: router,
		logger: logger,
		server: &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			Handler: router,
			// Approval flows block on a user decision, so the write timeout
			// stays generous compared to a typical API server.
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
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

// healthHandler answers liveness probes.
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler answers readiness probes.
func readinessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
