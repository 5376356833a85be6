package usecase

import (
	"context"
	"log/slog"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	cryptoService "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/service"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

type envelopeUseCase struct {
	engine cryptoService.Engine
	logger *slog.Logger
}

// NewEnvelopeUseCase creates an EnvelopeUseCase backed by engine.
func NewEnvelopeUseCase(engine cryptoService.Engine, logger *slog.Logger) EnvelopeUseCase {
	return &envelopeUseCase{
		engine: engine,
		logger: logger,
	}
}

func (u *envelopeUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
) (*cryptoDomain.EncryptedPayload, error) {
	ciphertext, metadata, err := u.engine.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	return &cryptoDomain.EncryptedPayload{Ciphertext: ciphertext, Metadata: metadata}, nil
}

func (u *envelopeUseCase) Decrypt(
	ctx context.Context,
	payload *cryptoDomain.EncryptedPayload,
) ([]byte, error) {
	if payload == nil {
		return nil, cryptoDomain.ErrInvalidMetadata
	}

	plaintext, err := u.engine.Decrypt(payload.Ciphertext, payload.Metadata)
	if err != nil {
		if apperrors.Is(err, cryptoDomain.ErrDecryptionFailed) {
			cause := "payload_auth"
			if apperrors.Is(err, cryptoDomain.ErrKeyUnwrapFailed) {
				cause = "key_unwrap"
			}
			u.logger.WarnContext(ctx, "envelope decryption failed", slog.String("cause", cause))
		}
		return nil, err
	}
	return plaintext, nil
}

func (u *envelopeUseCase) Enabled(ctx context.Context) bool {
	return u.engine.IsEnabled()
}
