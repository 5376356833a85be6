package domain

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// KMSKeeper is the subset of *secrets.Keeper used to unwrap a KMS-protected master key.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// DecodeMasterKey decodes a base64 master key and checks it is exactly 32 bytes.
//
// Both padded (44 characters) and unpadded (43 characters) standard base64
// are accepted. The returned slice is owned by the caller, who should zero it
// once it has been handed to the engine.
func DecodeMasterKey(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	key, err := decodeBase64(encoded)
	if err != nil {
		return nil, ErrInvalidMasterKeyBase64
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}
	return key, nil
}

// LoadMasterKey resolves the configured master key.
//
// Without a keeper the value is decoded directly with DecodeMasterKey. With a
// keeper the value is the base64 of a KMS ciphertext, which is decrypted and
// then checked for size.
func LoadMasterKey(ctx context.Context, encoded string, keeper KMSKeeper) ([]byte, error) {
	if keeper == nil {
		return DecodeMasterKey(encoded)
	}

	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrMasterKeyNotSet
	}

	ciphertext, err := decodeBase64(encoded)
	if err != nil {
		return nil, ErrInvalidMasterKeyBase64
	}

	key, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt master key with KMS: %w", err)
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: master key must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(key))
	}
	return key, nil
}

// GenerateMasterKey returns 32 bytes from crypto/rand.
func GenerateMasterKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}
	return key, nil
}

// EncodeMasterKey returns the padded base64 form expected by MASTER_KEY.
func EncodeMasterKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}

// Zero overwrites key material in place.
func Zero(b []byte) {
	clear(b)
}
