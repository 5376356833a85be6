// Package service provides the envelope encryption engine and the AEAD ciphers it is built on.
package service

import (
	"context"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Engine defines envelope encryption of in-memory payloads under a rotatable master key.
type Engine interface {
	// Encrypt encrypts plaintext under a fresh DEK and wraps the DEK under the master key.
	Encrypt(plaintext []byte) ([]byte, *cryptoDomain.EnvelopeMetadata, error)

	// Decrypt unwraps the DEK recorded in metadata and authenticates and decrypts ciphertext.
	Decrypt(ciphertext []byte, metadata *cryptoDomain.EnvelopeMetadata) ([]byte, error)

	// RotateMasterKey replaces the master key used by subsequent operations.
	RotateMasterKey(newKey []byte) error

	// IsEnabled reports whether the master key was configured rather than generated.
	IsEnabled() bool
}

// KMSService opens KMS keepers used to unwrap the configured master key.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
