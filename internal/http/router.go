package http

import (
	"context"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	authHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/http"
	authService "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/service"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/config"
	cryptoHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/http"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/metrics"
	storageHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/http"
)

// Handlers groups everything SetupRouter mounts.
type Handlers struct {
	TokenService     authService.TokenService
	Storage          *storageHTTP.StorageHandler
	OwnershipGuard   storageHTTP.OwnershipAuthorizer
	Envelope         *cryptoHTTP.EnvelopeHandler
	AuditLog         *authHTTP.AuditLogHandler
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// SetupRouter builds the route table. ctx bounds the rate limiter cleanup goroutines.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, h Handlers) {
	router := gin.New()
	router.Use(RecoveryMiddleware(s.logger))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if h.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(h.MeterProvider, h.MetricsNamespace))
	}

	router.GET("/health", healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	public := v1.Group("/storage/public")
	if cfg.RateLimitPublicEnabled {
		public.Use(authHTTP.IPRateLimitMiddleware(
			ctx,
			cfg.RateLimitPublicRequestsPerSec,
			cfg.RateLimitPublicBurst,
			s.logger,
		))
	}
	public.GET("/:key/download", h.Storage.PublicDownloadGrantHandler)

	authed := v1.Group("")
	authed.Use(authHTTP.AuthenticationMiddleware(h.TokenService, s.logger))
	if cfg.RateLimitEnabled {
		authed.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	storage := authed.Group("/storage")
	{
		storage.POST("/upload-grants", h.Storage.CreateUploadGrantHandler)
		storage.GET("/objects/:key/download", h.Storage.DownloadGrantHandler)
		storage.DELETE("/objects/:key", h.Storage.DeleteHandler)
		storage.HEAD("/objects/:key", h.Storage.ExistsHandler)
	}

	authed.GET("/moderation/objects/:key/download",
		h.Storage.OwnershipMiddleware(h.OwnershipGuard, authDomain.ActionModeratedDownloadGrant),
		h.Storage.ModeratedDownloadGrantHandler,
	)

	envelope := authed.Group("/envelope")
	{
		envelope.POST("/encrypt", h.Envelope.EncryptHandler)
		envelope.POST("/decrypt", h.Envelope.DecryptHandler)
	}

	admin := authed.Group("/admin", authHTTP.RequireRole(authDomain.RoleAdmin, s.logger))
	admin.GET("/audit-logs", h.AuditLog.ListHandler)

	s.router = router
}
