package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kmsService := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		require.NotNil(t, keeper)
		defer func() {
			assert.NoError(t, keeper.Close())
		}()

		_, ok := keeper.(*secrets.Keeper)
		assert.True(t, ok, "keeper should be *secrets.Keeper")
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, keeper)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
		assert.Contains(t, err.Error(), `unsupported key URI scheme "invalid"`)
		assert.Contains(t, err.Error(), "base64key")
	})

	t.Run("Error_MalformedLocalKey", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "base64key://not-a-key")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})

	t.Run("Error_EmptyURI", func(t *testing.T) {
		keeper, err := kmsService.OpenKeeper(ctx, "")
		assert.Error(t, err)
		assert.Nil(t, keeper)
	})
}

func TestKMSService_UnwrapsMasterKeyForEngine(t *testing.T) {
	ctx := context.Background()
	keeper, err := NewKMSService().OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, keeper.Close())
	}()

	raw, err := cryptoDomain.GenerateMasterKey()
	require.NoError(t, err)
	wrapped, err := keeper.Encrypt(ctx, raw)
	require.NoError(t, err)

	masterKey, err := cryptoDomain.LoadMasterKey(ctx, base64.StdEncoding.EncodeToString(wrapped), keeper)
	require.NoError(t, err)
	defer cryptoDomain.Zero(masterKey)

	engine, err := NewEnvelopeEngine(masterKey, true, NewAEADManager(), newTestLogger())
	require.NoError(t, err)
	assert.True(t, engine.IsEnabled())

	other, err := NewKMSService().OpenKeeper(ctx, generateLocalSecretsURI(t))
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, other.Close())
	}()

	_, err = cryptoDomain.LoadMasterKey(ctx, base64.StdEncoding.EncodeToString(wrapped), other)
	assert.Error(t, err)
}
