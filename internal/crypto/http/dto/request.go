// Package dto provides data transfer objects for envelope HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	customValidation "github.com/Synnly/gestion-projet-m2-sub003/internal/validation"
)

// EncryptRequest contains the payload to seal under a fresh data key.
// An empty plaintext is allowed.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"` // Base64-encoded plaintext
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			customValidation.Base64Payload(cryptoDomain.MaxPayloadSize),
		),
	)
}

// DecryptRequest contains a ciphertext and the envelope metadata returned by encrypt.
type DecryptRequest struct {
	Ciphertext string                         `json:"ciphertext"` // Base64-encoded ciphertext
	Metadata   *cryptoDomain.EnvelopeMetadata `json:"metadata"`
}

// Validate checks if the decrypt request is valid. Metadata contents are
// checked by the engine.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			customValidation.Base64Payload(cryptoDomain.MaxPayloadSize),
		),
		validation.Field(&r.Metadata,
			validation.Required,
		),
	)
}
