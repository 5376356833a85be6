// Package usecase exposes the envelope engine to the HTTP layer.
package usecase

import (
	"context"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// EnvelopeUseCase encrypts and decrypts in-memory payloads.
type EnvelopeUseCase interface {
	// Encrypt encrypts plaintext under a fresh DEK.
	Encrypt(ctx context.Context, plaintext []byte) (*cryptoDomain.EncryptedPayload, error)

	// Decrypt authenticates and decrypts a payload produced by Encrypt.
	Decrypt(ctx context.Context, payload *cryptoDomain.EncryptedPayload) ([]byte, error)

	// Enabled reports whether a configured master key is in use.
	Enabled(ctx context.Context) bool
}
