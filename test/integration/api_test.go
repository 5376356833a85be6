// Package integration exercises the assembled gateway end to end over HTTP
// against a filesystem-backed bucket.
package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	"github.com/Synnly/gestion-projet-m2-sub003/internal/app"
	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/config"
	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

const integrationJWTSecret = "integration-test-secret-0123456789abcdef"

type gateway struct {
	container *app.Container
	server    *httptest.Server
	bucketDir string
}

func setupGateway(t *testing.T) *gateway {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	gin.SetMode(gin.TestMode)

	bucketDir := t.TempDir()
	keyPath := filepath.Join(t.TempDir(), "signing.key")
	require.NoError(t, os.WriteFile(keyPath, []byte("fileblob-url-signing-key"), 0o600))

	query := url.Values{}
	query.Set("base_url", "http://files.gateway.test/objects")
	query.Set("secret_key_path", keyPath)

	masterKey, err := cryptoDomain.GenerateMasterKey()
	require.NoError(t, err)

	cfg := &config.Config{
		AppEnv:           config.EnvDevelopment,
		LogLevel:         "error",
		ServerHost:       "127.0.0.1",
		ServerPort:       0,
		StorageProvider:  config.StorageProviderBlob,
		StorageBlobURL:   "file://" + bucketDir + "?" + query.Encode(),
		MasterKey:        cryptoDomain.EncodeMasterKey(masterKey),
		JWTSecret:        integrationJWTSecret,
		JWTIssuer:        "storage-gateway",
		JWTTokenTTL:      time.Hour,
		MetricsEnabled:   true,
		MetricsNamespace: "storage_gateway_it",
	}
	require.NoError(t, cfg.Validate())

	container := app.NewContainer(cfg)
	httpServer, err := container.HTTPServer(context.Background())
	require.NoError(t, err)

	server := httptest.NewServer(httpServer.GetHandler())
	t.Cleanup(func() {
		server.Close()
		assert.NoError(t, container.Shutdown(context.Background()))
	})

	return &gateway{container: container, server: server, bucketDir: bucketDir}
}

func (g *gateway) token(t *testing.T, id string, role authDomain.Role) string {
	t.Helper()
	tokenService, err := g.container.TokenService()
	require.NoError(t, err)
	token, _, err := tokenService.Issue(authDomain.Principal{ID: id, Role: role}, time.Hour)
	require.NoError(t, err)
	return token
}

func (g *gateway) request(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, g.server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, respBody
}

// upload stands in for the client PUT to the presigned URL, recording owner metadata the
// way an S3-compatible store does for a signed x-amz-meta header.
func (g *gateway) upload(t *testing.T, key, owner string) {
	t.Helper()
	bucket, err := fileblob.OpenBucket(g.bucketDir, nil)
	require.NoError(t, err)
	defer func() { _ = bucket.Close() }()

	require.NoError(t, bucket.WriteAll(context.Background(), key, []byte("%PDF-1.7"), &blob.WriterOptions{
		Metadata: map[string]string{storageDomain.OwnerMetadataKey: owner},
	}))
}

func decode[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}

func TestIntegration_Health(t *testing.T) {
	g := setupGateway(t)

	resp, _ := g.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := g.request(t, http.MethodGet, "/ready", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	ready := decode[map[string]any](t, body)
	components := ready["components"].(map[string]any)
	assert.Equal(t, "ok", components["storage"])
	assert.Equal(t, "disabled", components["database"])
}

func TestIntegration_OwnershipFlow(t *testing.T) {
	g := setupGateway(t)
	u1 := g.token(t, "u1", authDomain.RoleUser)
	u2 := g.token(t, "u2", authDomain.RoleUser)
	admin := g.token(t, "moderator", authDomain.RoleAdmin)

	// u1 asks for an upload grant; the key is derived from the requester, not the filename.
	resp, body := g.request(t, http.MethodPost, "/v1/storage/upload-grants", u1, map[string]string{
		"filename": "My Resume.PDF",
		"purpose":  "cv",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	grant := decode[map[string]any](t, body)
	assert.Equal(t, "u1_cv.pdf", grant["key"])
	assert.Equal(t, http.MethodPut, grant["method"])
	assert.NotEmpty(t, grant["upload_url"])

	g.upload(t, "u1_cv.pdf", "u1")

	t.Run("owner can download", func(t *testing.T) {
		resp, body := g.request(t, http.MethodGet, "/v1/storage/objects/u1_cv.pdf/download", u1, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		download := decode[map[string]any](t, body)
		assert.Equal(t, "u1_cv.pdf", download["key"])
		assert.Contains(t, download["download_url"], "http://files.gateway.test/objects")
	})

	t.Run("other user is refused", func(t *testing.T) {
		resp, _ := g.request(t, http.MethodGet, "/v1/storage/objects/u1_cv.pdf/download", u2, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = g.request(t, http.MethodDelete, "/v1/storage/objects/u1_cv.pdf", u2, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp, _ = g.request(t, http.MethodGet, "/v1/moderation/objects/u1_cv.pdf/download", u2, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin bypasses ownership on moderation route", func(t *testing.T) {
		resp, body := g.request(t, http.MethodGet, "/v1/moderation/objects/u1_cv.pdf/download", admin, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Equal(t, "u1_cv.pdf", decode[map[string]any](t, body)["key"])
	})

	t.Run("cv is never public", func(t *testing.T) {
		resp, _ := g.request(t, http.MethodGet, "/v1/storage/public/u1_cv.pdf/download", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("unsafe keys are rejected", func(t *testing.T) {
		resp, _ := g.request(t, http.MethodGet, "/v1/storage/objects/..%5Cetc%5Cpasswd/download", u1, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp, _ := g.request(t, http.MethodDelete, "/v1/storage/objects/u1_cv.pdf", u1, nil)
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		resp, _ = g.request(t, http.MethodHead, "/v1/storage/objects/u1_cv.pdf", u1, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = g.request(t, http.MethodGet, "/v1/storage/objects/u1_cv.pdf/download", u1, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestIntegration_PublicLogo(t *testing.T) {
	g := setupGateway(t)
	u1 := g.token(t, "u1", authDomain.RoleUser)

	resp, body := g.request(t, http.MethodPost, "/v1/storage/upload-grants", u1, map[string]string{
		"filename": "brand.png",
		"purpose":  "logo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	assert.Equal(t, "u1_logo.png", decode[map[string]any](t, body)["key"])

	resp, _ = g.request(t, http.MethodGet, "/v1/storage/public/u1_logo.png/download", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	g.upload(t, "u1_logo.png", "u1")

	resp, body = g.request(t, http.MethodGet, "/v1/storage/public/u1_logo.png/download", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "u1_logo.png", decode[map[string]any](t, body)["key"])
}

func TestIntegration_UploadValidation(t *testing.T) {
	g := setupGateway(t)
	u1 := g.token(t, "u1", authDomain.RoleUser)

	tests := []struct {
		name     string
		filename string
		purpose  string
	}{
		{"extension not allowed for cv", "resume.exe", "cv"},
		{"unknown purpose", "avatar.png", "avatar"},
		{"path in filename", "../../resume.pdf", "cv"},
		{"no extension", "resume", "cv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := g.request(t, http.MethodPost, "/v1/storage/upload-grants", u1, map[string]string{
				"filename": tt.filename,
				"purpose":  tt.purpose,
			})
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		})
	}

	resp, _ := g.request(t, http.MethodPost, "/v1/storage/upload-grants", "", map[string]string{
		"filename": "resume.pdf",
		"purpose":  "cv",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_EnvelopeRoundTrip(t *testing.T) {
	g := setupGateway(t)
	u1 := g.token(t, "u1", authDomain.RoleUser)
	plaintext := []byte("candidate notes: confidential")

	resp, body := g.request(t, http.MethodPost, "/v1/envelope/encrypt", u1, map[string]string{
		"plaintext": base64.StdEncoding.EncodeToString(plaintext),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	sealed := decode[map[string]json.RawMessage](t, body)
	require.Contains(t, sealed, "ciphertext")
	require.Contains(t, sealed, "metadata")

	resp, body = g.request(t, http.MethodPost, "/v1/envelope/decrypt", u1, sealed)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	opened := decode[map[string]string](t, body)
	decoded, err := base64.StdEncoding.DecodeString(opened["plaintext"])
	require.NoError(t, err)
	assert.Equal(t, plaintext, decoded)

	// After rotation, payloads sealed under the previous key no longer open.
	newKey, err := cryptoDomain.GenerateMasterKey()
	require.NoError(t, err)
	require.NoError(t, g.container.RotateMasterKey(context.Background(), cryptoDomain.EncodeMasterKey(newKey)))

	resp, _ = g.request(t, http.MethodPost, "/v1/envelope/decrypt", u1, sealed)
	assert.GreaterOrEqual(t, resp.StatusCode, http.StatusBadRequest)
}
