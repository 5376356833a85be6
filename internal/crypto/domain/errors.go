package domain

import (
	"github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrUnsupportedAlgorithm indicates the envelope names an algorithm the engine does not implement.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a master key or DEK is not exactly 32 bytes.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrMasterKeyNotSet indicates no master key was configured.
	//
	// Fatal at startup in production.
	ErrMasterKeyNotSet = errors.New("master key is not set")

	// ErrInvalidMasterKeyBase64 indicates the configured master key is not valid base64.
	ErrInvalidMasterKeyBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid master key base64")

	// ErrInvalidMetadata indicates envelope metadata is missing fields or has malformed values.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidMetadata = errors.Wrap(errors.ErrInvalidInput, "invalid envelope metadata")

	// ErrDecryptionFailed is the single user-facing class for authentication failures.
	//
	// The specific cause is available through ErrKeyUnwrapFailed and
	// ErrPayloadAuthFailed, both of which wrap this error. Cipher-internal
	// messages are never included.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrDecryptionFailed = errors.ErrDecryptionFailed

	// ErrKeyUnwrapFailed indicates the wrapped DEK did not authenticate under the master key.
	ErrKeyUnwrapFailed = errors.Wrap(ErrDecryptionFailed, "key unwrap failed")

	// ErrPayloadAuthFailed indicates the payload did not authenticate under the unwrapped DEK.
	ErrPayloadAuthFailed = errors.Wrap(ErrDecryptionFailed, "payload authentication failed")
)
