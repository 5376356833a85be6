package dto

import (
	"encoding/base64"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// EncryptResponse carries the sealed payload. Both fields are needed to decrypt.
type EncryptResponse struct {
	Ciphertext string                         `json:"ciphertext"`
	Metadata   *cryptoDomain.EnvelopeMetadata `json:"metadata"`
}

// DecryptResponse carries the recovered plaintext.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// MapEncryptResponse converts an encrypted payload to an API response.
func MapEncryptResponse(payload *cryptoDomain.EncryptedPayload) EncryptResponse {
	return EncryptResponse{
		Ciphertext: base64.StdEncoding.EncodeToString(payload.Ciphertext),
		Metadata:   payload.Metadata,
	}
}

// MapDecryptResponse converts plaintext bytes to an API response.
func MapDecryptResponse(plaintext []byte) DecryptResponse {
	return DecryptResponse{
		Plaintext: base64.StdEncoding.EncodeToString(plaintext),
	}
}
