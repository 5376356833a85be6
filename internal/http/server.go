// Package http provides the API and metrics servers and the route table.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// readinessTimeout bounds each dependency probe made by /ready.
const readinessTimeout = 3 * time.Second

// ReadinessChecker reports whether a dependency can serve traffic.
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// Server represents the API HTTP server.
type Server struct {
	server  *http.Server
	logger  *slog.Logger
	router  *gin.Engine
	db      *sql.DB
	storage ReadinessChecker
}

// NewServer creates a new API server. db may be nil when the audit store is
// disabled. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	storage ReadinessChecker,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:      db,
		storage: storage,
		logger:  logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// GetHandler returns the configured router. Used by tests and the integration suite.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
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

// healthHandler reports liveness only.
// GET /health
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler probes the bucket and, when configured, the audit database.
// GET /ready - 200 when every component is "ok" or "disabled", 503 otherwise.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	components := gin.H{}
	ready := true

	switch {
	case s.storage == nil:
		components["storage"] = "error"
		ready = false
	case s.storage.Ready(ctx) != nil:
		s.logger.WarnContext(ctx, "storage readiness check failed")
		components["storage"] = "error"
		ready = false
	default:
		components["storage"] = "ok"
	}

	switch {
	case s.db == nil:
		components["database"] = "disabled"
	case s.db.PingContext(ctx) != nil:
		s.logger.WarnContext(ctx, "database readiness check failed")
		components["database"] = "error"
		ready = false
	default:
		components["database"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
