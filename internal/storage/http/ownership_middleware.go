package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	authHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/http"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/httputil"
)

// OwnershipAuthorizer decides whether a principal may act on an object key.
type OwnershipAuthorizer interface {
	Authorize(ctx context.Context, key string, principal *authDomain.Principal) error
}

// OwnershipMiddleware authorizes the principal for the :key route parameter.
//
// MUST be used after AuthenticationMiddleware. Admins pass; other principals
// must be the recorded owner. A refusal is audited under action and aborts
// the request.
func (h *StorageHandler) OwnershipMiddleware(guard OwnershipAuthorizer, action authDomain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, _ := authHTTP.GetPrincipal(c.Request.Context())
		key := c.Param("key")

		if err := guard.Authorize(c.Request.Context(), key, principal); err != nil {
			h.logger.Debug("ownership check refused",
				slog.String("action", string(action)),
				slog.Any("error", err))
			h.audit(c, action, key, principal, err)
			httputil.HandleErrorGin(c, err, h.logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
