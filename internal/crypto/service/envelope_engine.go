package service

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync/atomic"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// EnvelopeEngine implements Engine using a two-tier key hierarchy.
//
// The master key only ever wraps DEKs. Each Encrypt call generates a fresh
// 32-byte DEK, wraps it under the master key, encrypts the payload with it and
// zeroes it before returning. Decrypt reverses the process and zeroes the
// recovered DEK on every exit path.
//
// The master key lives behind an atomic pointer. RotateMasterKey swaps the
// pointer; operations already in flight keep the key they loaded. Rotation
// does not re-wrap DEKs of existing payloads, which therefore fail to decrypt
// under the new key.
type EnvelopeEngine struct {
	masterKey   atomic.Pointer[[]byte]
	enabled     atomic.Bool
	aeadManager AEADManager
	logger      *slog.Logger
}

// NewEnvelopeEngine creates an engine around the given master key.
//
// The key is copied; callers may zero their slice afterwards. When masterKey is
// missing or not 32 bytes the behavior depends on production: in production the
// error is returned, otherwise an ephemeral random key is generated, a warning
// is logged and IsEnabled reports false.
func NewEnvelopeEngine(
	masterKey []byte,
	production bool,
	aeadManager AEADManager,
	logger *slog.Logger,
) (*EnvelopeEngine, error) {
	e := &EnvelopeEngine{
		aeadManager: aeadManager,
		logger:      logger,
	}

	var keyErr error
	switch {
	case len(masterKey) == 0:
		keyErr = cryptoDomain.ErrMasterKeyNotSet
	case len(masterKey) != cryptoDomain.KeySize:
		keyErr = fmt.Errorf(
			"%w: master key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.KeySize,
			len(masterKey),
		)
	}

	if keyErr == nil {
		key := make([]byte, cryptoDomain.KeySize)
		copy(key, masterKey)
		e.masterKey.Store(&key)
		e.enabled.Store(true)
		return e, nil
	}

	if production {
		return nil, keyErr
	}

	ephemeral, err := cryptoDomain.GenerateMasterKey()
	if err != nil {
		return nil, err
	}
	e.masterKey.Store(&ephemeral)
	logger.Warn(
		"master key unavailable, using an ephemeral key; encrypted payloads will not survive a restart",
		slog.Any("reason", keyErr),
	)
	return e, nil
}

// Encrypt encrypts plaintext and returns the ciphertext with its envelope metadata.
//
// The returned ciphertext does not include the authentication tag; it is
// stored in metadata as dataAuthTag.
func (e *EnvelopeEngine) Encrypt(plaintext []byte) ([]byte, *cryptoDomain.EnvelopeMetadata, error) {
	masterKey := *e.masterKey.Load()

	dek := make([]byte, cryptoDomain.KeySize)
	defer cryptoDomain.Zero(dek)
	if _, err := rand.Read(dek); err != nil {
		return nil, nil, fmt.Errorf("failed to generate DEK: %w", err)
	}

	wrapper, err := e.aeadManager.CreateCipher(masterKey, cryptoDomain.AES256GCM)
	if err != nil {
		return nil, nil, err
	}
	wrapped, dekIV, err := wrapper.Encrypt(dek, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to wrap DEK: %w", err)
	}
	dekEncrypted, dekTag := splitTag(wrapped)

	dataCipher, err := e.aeadManager.CreateCipher(dek, cryptoDomain.AES256GCM)
	if err != nil {
		return nil, nil, err
	}
	sealed, dataIV, err := dataCipher.Encrypt(plaintext, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encrypt payload: %w", err)
	}
	ciphertext, dataTag := splitTag(sealed)

	metadata := cryptoDomain.NewEnvelopeMetadata(cryptoDomain.AES256GCM, cryptoDomain.DecodedEnvelope{
		DekEncrypted: dekEncrypted,
		DekIV:        dekIV,
		DekAuthTag:   dekTag,
		DataIV:       dataIV,
		DataAuthTag:  dataTag,
	})
	return ciphertext, metadata, nil
}

// Decrypt authenticates and decrypts ciphertext produced by Encrypt.
//
// The algorithm is checked before any field is decoded or any cipher is built.
// Authentication failures are reported as ErrKeyUnwrapFailed or
// ErrPayloadAuthFailed, both of which match ErrDecryptionFailed.
func (e *EnvelopeEngine) Decrypt(ciphertext []byte, metadata *cryptoDomain.EnvelopeMetadata) ([]byte, error) {
	if metadata == nil {
		return nil, cryptoDomain.ErrInvalidMetadata
	}
	if cryptoDomain.Algorithm(metadata.Algorithm) != cryptoDomain.AES256GCM {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}

	parts, err := metadata.Decode()
	if err != nil {
		return nil, err
	}

	masterKey := *e.masterKey.Load()
	wrapper, err := e.aeadManager.CreateCipher(masterKey, cryptoDomain.AES256GCM)
	if err != nil {
		return nil, err
	}

	dek, err := wrapper.Decrypt(joinTag(parts.DekEncrypted, parts.DekAuthTag), parts.DekIV, nil)
	defer cryptoDomain.Zero(dek)
	if err != nil {
		return nil, cryptoDomain.ErrKeyUnwrapFailed
	}

	dataCipher, err := e.aeadManager.CreateCipher(dek, cryptoDomain.AES256GCM)
	if err != nil {
		return nil, cryptoDomain.ErrKeyUnwrapFailed
	}

	plaintext, err := dataCipher.Decrypt(joinTag(ciphertext, parts.DataAuthTag), parts.DataIV, nil)
	if err != nil {
		return nil, cryptoDomain.ErrPayloadAuthFailed
	}
	if plaintext == nil {
		plaintext = []byte{}
	}
	return plaintext, nil
}

// RotateMasterKey validates newKey and atomically replaces the master key.
//
// The key is copied. After rotation IsEnabled reports true.
func (e *EnvelopeEngine) RotateMasterKey(newKey []byte) error {
	if len(newKey) != cryptoDomain.KeySize {
		return fmt.Errorf(
			"%w: master key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.KeySize,
			len(newKey),
		)
	}

	key := make([]byte, cryptoDomain.KeySize)
	copy(key, newKey)
	e.masterKey.Store(&key)
	e.enabled.Store(true)

	e.logger.Info("master key rotated")
	return nil
}

// IsEnabled reports whether the engine runs on a configured master key.
func (e *EnvelopeEngine) IsEnabled() bool {
	return e.enabled.Load()
}

// splitTag separates a GCM seal output into ciphertext and its trailing tag.
func splitTag(sealed []byte) (ciphertext, tag []byte) {
	n := len(sealed) - cryptoDomain.TagSize
	return sealed[:n], sealed[n:]
}

// joinTag returns ciphertext||tag in a new slice, leaving the caller's buffers untouched.
func joinTag(ciphertext, tag []byte) []byte {
	out := make([]byte, 0, len(ciphertext)+len(tag))
	out = append(out, ciphertext...)
	return append(out, tag...)
}
