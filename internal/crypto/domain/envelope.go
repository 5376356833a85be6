package domain

import (
	"encoding/base64"
	"fmt"
)

// EnvelopeMetadata accompanies every payload produced by the envelope engine.
//
// Binary fields are standard base64. Field order is fixed so that marshaling
// decoded metadata reproduces the original JSON byte for byte.
type EnvelopeMetadata struct {
	Algorithm       string `json:"algorithm"`
	DekEncrypted    string `json:"dekEncrypted"`
	DekIV           string `json:"dekIv"`
	DekAuthTag      string `json:"dekAuthTag"`
	DataIV          string `json:"dataIv"`
	DataAuthTag     string `json:"dataAuthTag"`
	MetadataVersion int    `json:"metadataVersion"`
}

// DecodedEnvelope holds the raw bytes recovered from EnvelopeMetadata.
type DecodedEnvelope struct {
	DekEncrypted []byte
	DekIV        []byte
	DekAuthTag   []byte
	DataIV       []byte
	DataAuthTag  []byte
}

// NewEnvelopeMetadata encodes raw envelope parts into metadata for the given algorithm.
func NewEnvelopeMetadata(alg Algorithm, parts DecodedEnvelope) *EnvelopeMetadata {
	enc := base64.StdEncoding
	return &EnvelopeMetadata{
		Algorithm:       string(alg),
		DekEncrypted:    enc.EncodeToString(parts.DekEncrypted),
		DekIV:           enc.EncodeToString(parts.DekIV),
		DekAuthTag:      enc.EncodeToString(parts.DekAuthTag),
		DataIV:          enc.EncodeToString(parts.DataIV),
		DataAuthTag:     enc.EncodeToString(parts.DataAuthTag),
		MetadataVersion: MetadataVersion,
	}
}

// Decode validates the schema version and decodes every binary field,
// checking each against its expected length.
//
// The algorithm field is not checked here; callers pin it first.
func (m *EnvelopeMetadata) Decode() (DecodedEnvelope, error) {
	if m.MetadataVersion != MetadataVersion {
		return DecodedEnvelope{}, fmt.Errorf(
			"%w: unsupported metadata version %d",
			ErrInvalidMetadata,
			m.MetadataVersion,
		)
	}

	var (
		out DecodedEnvelope
		err error
	)
	fields := []struct {
		name  string
		value string
		size  int
		dst   *[]byte
	}{
		{"dekEncrypted", m.DekEncrypted, KeySize, &out.DekEncrypted},
		{"dekIv", m.DekIV, IVSize, &out.DekIV},
		{"dekAuthTag", m.DekAuthTag, TagSize, &out.DekAuthTag},
		{"dataIv", m.DataIV, IVSize, &out.DataIV},
		{"dataAuthTag", m.DataAuthTag, TagSize, &out.DataAuthTag},
	}
	for _, f := range fields {
		*f.dst, err = base64.StdEncoding.DecodeString(f.value)
		if err != nil {
			return DecodedEnvelope{}, fmt.Errorf("%w: %s is not valid base64", ErrInvalidMetadata, f.name)
		}
		if len(*f.dst) != f.size {
			return DecodedEnvelope{}, fmt.Errorf(
				"%w: %s must be %d bytes, got %d",
				ErrInvalidMetadata,
				f.name,
				f.size,
				len(*f.dst),
			)
		}
	}

	return out, nil
}

// EncryptedPayload is a ciphertext together with the metadata needed to decrypt it.
type EncryptedPayload struct {
	Ciphertext []byte
	Metadata   *EnvelopeMetadata
}
