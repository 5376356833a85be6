// Package http provides HTTP handlers for envelope encryption of in-memory payloads.
package http

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/http/dto"
	cryptoUseCase "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/usecase"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/httputil"
	customValidation "github.com/Synnly/gestion-projet-m2-sub003/internal/validation"
)

// EnvelopeHandler handles HTTP requests for envelope encryption and decryption.
type EnvelopeHandler struct {
	envelopeUseCase cryptoUseCase.EnvelopeUseCase
	logger          *slog.Logger
}

// NewEnvelopeHandler creates a new envelope handler with required dependencies.
func NewEnvelopeHandler(envelopeUseCase cryptoUseCase.EnvelopeUseCase, logger *slog.Logger) *EnvelopeHandler {
	return &EnvelopeHandler{
		envelopeUseCase: envelopeUseCase,
		logger:          logger,
	}
}

// EncryptHandler seals a base64 plaintext under a fresh data key.
// POST /v1/envelope/encrypt - Requires authentication.
// Returns 200 OK with the base64 ciphertext and its envelope metadata.
func (h *EnvelopeHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := base64.StdEncoding.DecodeString(req.Plaintext)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid base64 plaintext: %w", err), h.logger)
		return
	}
	defer cryptoDomain.Zero(plaintext)

	payload, err := h.envelopeUseCase.Encrypt(c.Request.Context(), plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResponse(payload))
}

// DecryptHandler authenticates and opens a payload produced by EncryptHandler.
// POST /v1/envelope/decrypt - Requires authentication.
// Returns 200 OK with base64 plaintext, or 422 for any tampered or foreign payload.
func (h *EnvelopeHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	ciphertext, err := base64.StdEncoding.DecodeString(req.Ciphertext)
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid base64 ciphertext: %w", err), h.logger)
		return
	}

	plaintext, err := h.envelopeUseCase.Decrypt(c.Request.Context(), &cryptoDomain.EncryptedPayload{
		Ciphertext: ciphertext,
		Metadata:   req.Metadata,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// SECURITY: Zero plaintext after mapping to response
	defer cryptoDomain.Zero(plaintext)

	c.JSON(http.StatusOK, dto.MapDecryptResponse(plaintext))
}
