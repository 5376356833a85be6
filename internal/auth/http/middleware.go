package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	authService "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/service"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer JWT in the Authorization header.
//
// The "Bearer" scheme is matched case-insensitively. On success the principal
// named by the token is stored in the request context for GetPrincipal.
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Invalid, expired or foreign-signed token → 401 Unauthorized
func AuthenticationMiddleware(tokenService authService.TokenService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		principal, err := tokenService.Parse(token)
		if err != nil {
			logger.Debug("authentication failed", slog.Any("error", err))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithPrincipal(c.Request.Context(), principal))

		logger.Debug("authentication successful",
			slog.String("principal_id", principal.ID),
			slog.String("role", string(principal.Role)))

		c.Next()
	}
}

// RequireRole rejects authenticated principals that do not hold role.
//
// MUST be used after AuthenticationMiddleware. Missing principal → 401; wrong role → 403.
func RequireRole(role authDomain.Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			logger.Debug("authorization failed: no authenticated principal in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if principal.Role != role {
			logger.Debug("authorization failed: insufficient role",
				slog.String("principal_id", principal.ID),
				slog.String("role", string(principal.Role)),
				slog.String("required_role", string(role)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
