package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

func TestNewAEADManager(t *testing.T) {
	manager := NewAEADManager()
	assert.NotNil(t, manager)
}

func TestAEADManagerService_CreateCipher(t *testing.T) {
	manager := NewAEADManager()
	validKey := make([]byte, 32)
	_, err := rand.Read(validKey)
	require.NoError(t, err)

	t.Run("create AES-256-GCM cipher", func(t *testing.T) {
		cipher, err := manager.CreateCipher(validKey, cryptoDomain.AES256GCM)
		require.NoError(t, err)
		assert.NotNil(t, cipher)

		_, ok := cipher.(*AESGCMCipher)
		assert.True(t, ok, "cipher should be of type *AESGCMCipher")
	})

	tests := []struct {
		name    string
		key     []byte
		alg     cryptoDomain.Algorithm
		wantErr error
	}{
		{"unsupported algorithm", validKey, cryptoDomain.Algorithm("chacha20-poly1305"), cryptoDomain.ErrUnsupportedAlgorithm},
		{"empty algorithm", validKey, cryptoDomain.Algorithm(""), cryptoDomain.ErrUnsupportedAlgorithm},
		{"case-sensitive algorithm", validKey, cryptoDomain.Algorithm("AES-256-GCM"), cryptoDomain.ErrUnsupportedAlgorithm},
		{"key too short", make([]byte, 16), cryptoDomain.AES256GCM, cryptoDomain.ErrInvalidKeySize},
		{"key too long", make([]byte, 64), cryptoDomain.AES256GCM, cryptoDomain.ErrInvalidKeySize},
		{"empty key", []byte{}, cryptoDomain.AES256GCM, cryptoDomain.ErrInvalidKeySize},
		{"nil key", nil, cryptoDomain.AES256GCM, cryptoDomain.ErrInvalidKeySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := manager.CreateCipher(tt.key, tt.alg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAESGCMCipher(t *testing.T) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	cipher, err := NewAESGCM(key)
	require.NoError(t, err)

	t.Run("uses 16-byte IV and appends 16-byte tag", func(t *testing.T) {
		plaintext := []byte("secret message")
		ciphertext, nonce, err := cipher.Encrypt(plaintext, nil)
		require.NoError(t, err)
		assert.Len(t, nonce, cryptoDomain.IVSize)
		assert.Len(t, ciphertext, len(plaintext)+cryptoDomain.TagSize)

		decrypted, err := cipher.Decrypt(ciphertext, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("fresh IV per call", func(t *testing.T) {
		_, nonce1, err := cipher.Encrypt([]byte("same"), nil)
		require.NoError(t, err)
		_, nonce2, err := cipher.Encrypt([]byte("same"), nil)
		require.NoError(t, err)
		assert.NotEqual(t, nonce1, nonce2)
	})

	t.Run("AAD mismatch fails", func(t *testing.T) {
		ciphertext, nonce, err := cipher.Encrypt([]byte("bound"), []byte("ctx-a"))
		require.NoError(t, err)
		_, err = cipher.Decrypt(ciphertext, nonce, []byte("ctx-b"))
		assert.Error(t, err)
	})

	t.Run("wrong nonce size fails without panic", func(t *testing.T) {
		ciphertext, _, err := cipher.Encrypt([]byte("x"), nil)
		require.NoError(t, err)
		assert.NotPanics(t, func() {
			_, err = cipher.Decrypt(ciphertext, make([]byte, 12), nil)
		})
		assert.Error(t, err)
	})
}
