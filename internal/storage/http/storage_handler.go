// Package http provides HTTP handlers for storage grants, deletes and moderation.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	authHTTP "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/http"
	authUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/usecase"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/httputil"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/storage/http/dto"
	storageUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/usecase"
	customValidation "github.com/Synnly/gestion-projet-m2-sub003/internal/validation"
)

// StorageHandler handles HTTP requests for storage operations.
// Every grant and delete decision is recorded in the access audit log.
type StorageHandler struct {
	storageUseCase  storageUseCase.StorageUseCase
	auditLogUseCase authUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewStorageHandler creates a new storage handler with required dependencies.
func NewStorageHandler(
	storageUseCase storageUseCase.StorageUseCase,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *StorageHandler {
	return &StorageHandler{
		storageUseCase:  storageUseCase,
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// CreateUploadGrantHandler issues a presigned upload URL for the authenticated requester.
// POST /v1/storage/upload-grants - Requires authentication.
// Returns 201 Created with the derived key, URL, required headers and expiry.
func (h *StorageHandler) CreateUploadGrantHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	var req dto.CreateUploadGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		err = customValidation.WrapValidationError(err)
		h.audit(c, authDomain.ActionUploadGrant, "", principal, err)
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	grant, err := h.storageUseCase.RequestUpload(
		c.Request.Context(),
		principal,
		req.Filename,
		storageDomain.Purpose(req.Purpose),
	)
	if err != nil {
		h.audit(c, authDomain.ActionUploadGrant, "", principal, err)
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.audit(c, authDomain.ActionUploadGrant, grant.Key, principal, nil)
	c.JSON(http.StatusCreated, dto.MapUploadGrantToResponse(grant))
}

// DownloadGrantHandler issues a presigned download URL for an object owned by the requester.
// GET /v1/storage/objects/:key/download - Requires authentication.
// Returns 200 OK, 403 for another requester's object and 404 when absent.
func (h *StorageHandler) DownloadGrantHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())
	key := c.Param("key")

	grant, err := h.storageUseCase.RequestDownload(c.Request.Context(), principal, key)
	h.audit(c, authDomain.ActionDownloadGrant, key, principal, err)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDownloadGrantToResponse(grant))
}

// PublicDownloadGrantHandler issues a presigned download URL for a public object.
// GET /v1/storage/public/:key/download - No authentication.
// Returns 404 for any key that is not a public purpose.
func (h *StorageHandler) PublicDownloadGrantHandler(c *gin.Context) {
	key := c.Param("key")

	grant, err := h.storageUseCase.RequestPublicDownload(c.Request.Context(), key)
	h.audit(c, authDomain.ActionPublicDownloadGrant, key, nil, err)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDownloadGrantToResponse(grant))
}

// ModeratedDownloadGrantHandler issues a presigned download URL after OwnershipMiddleware.
// GET /v1/moderation/objects/:key/download - Requires authentication and ownership or admin.
func (h *StorageHandler) ModeratedDownloadGrantHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())
	key := c.Param("key")

	grant, err := h.storageUseCase.RequestModeratedDownload(c.Request.Context(), principal, key)
	h.audit(c, authDomain.ActionModeratedDownloadGrant, key, principal, err)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDownloadGrantToResponse(grant))
}

// DeleteHandler removes an object owned by the requester.
// DELETE /v1/storage/objects/:key - Requires authentication.
// Returns 204 No Content on success.
func (h *StorageHandler) DeleteHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())
	key := c.Param("key")

	err := h.storageUseCase.Delete(c.Request.Context(), principal, key)
	h.audit(c, authDomain.ActionDelete, key, principal, err)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExistsHandler reports whether an object exists.
// HEAD /v1/storage/objects/:key - Requires authentication.
// Returns 200 or 404 with an empty body.
func (h *StorageHandler) ExistsHandler(c *gin.Context) {
	principal, _ := authHTTP.GetPrincipal(c.Request.Context())

	key := c.Param("key")
	exists, err := h.storageUseCase.Exists(c.Request.Context(), principal, key)
	if err == nil && !exists {
		err = storageDomain.ErrObjectNotFound
	}
	h.audit(c, authDomain.ActionExists, key, principal, err)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusOK)
}

// audit records the decision for one storage action. Failures to persist the
// record are logged and never change the response.
func (h *StorageHandler) audit(
	c *gin.Context,
	action authDomain.Action,
	key string,
	principal *authDomain.Principal,
	err error,
) {
	auditLog := &authDomain.AuditLog{
		RequestID: requestid.Get(c),
		Action:    action,
		ObjectKey: key,
		Outcome:   OutcomeFromError(err),
	}
	if principal != nil {
		auditLog.RequesterID = principal.ID
		auditLog.Metadata = map[string]any{"role": string(principal.Role)}
	}
	if auditLog.Outcome == authDomain.OutcomeInvalid {
		if auditLog.Metadata == nil {
			auditLog.Metadata = map[string]any{}
		}
		auditLog.Metadata["reason"] = err.Error()
	}

	if auditErr := h.auditLogUseCase.Create(c.Request.Context(), auditLog); auditErr != nil {
		h.logger.ErrorContext(c.Request.Context(), "failed to record audit log",
			slog.String("action", string(action)),
			slog.Any("error", auditErr),
		)
	}
}

// OutcomeFromError classifies a storage operation result for the audit log.
func OutcomeFromError(err error) authDomain.Outcome {
	switch {
	case err == nil:
		return authDomain.OutcomeGranted
	case apperrors.Is(err, apperrors.ErrForbidden), apperrors.Is(err, apperrors.ErrUnauthorized):
		return authDomain.OutcomeDenied
	case apperrors.Is(err, apperrors.ErrNotFound):
		return authDomain.OutcomeNotFound
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return authDomain.OutcomeInvalid
	default:
		return authDomain.OutcomeFailed
	}
}
