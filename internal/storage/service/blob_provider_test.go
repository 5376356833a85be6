package service

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

var _ Provider = (*BlobProvider)(nil)

type blobFixture struct {
	provider *BlobProvider
	bucket   *blob.Bucket
	signer   *fileblob.URLSignerHMAC
}

func newBlobFixture(t *testing.T) *blobFixture {
	t.Helper()

	signer := fileblob.NewURLSignerHMAC(
		&url.URL{Scheme: "http", Host: "localhost:8080", Path: "/blob"},
		[]byte("test-signing-secret"),
	)
	bucket, err := fileblob.OpenBucket(t.TempDir(), &fileblob.Options{URLSigner: signer})
	require.NoError(t, err)

	p := NewBlobProvider(bucket, discardLogger())
	t.Cleanup(func() { _ = p.Close() })

	return &blobFixture{provider: p, bucket: bucket, signer: signer}
}

func (f *blobFixture) put(t *testing.T, key string, metadata map[string]string) {
	t.Helper()
	err := f.bucket.WriteAll(context.Background(), key, []byte("content"), &blob.WriterOptions{Metadata: metadata})
	require.NoError(t, err)
}

func TestBlobProvider_GenerateUploadGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newBlobFixture(t)
		before := time.Now()

		grant, err := f.provider.GenerateUploadGrant(ctx, "Resume.DOCX", storageDomain.PurposeCV, "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1_cv.docx", grant.Key)
		assert.Equal(t, http.MethodPut, grant.Method)
		assert.Equal(
			t,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			grant.Headers.Get("Content-Type"),
		)
		assert.WithinDuration(t, before.Add(600*time.Second), grant.ExpiresAt, 5*time.Second)

		u, err := url.Parse(grant.UploadURL)
		require.NoError(t, err)
		key, err := f.signer.KeyFromURL(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, "u1_cv.docx", key)
	})

	t.Run("Success_NoOwnerHeaderWhenDriverCannotBindMetadata", func(t *testing.T) {
		f := newBlobFixture(t)

		grant, err := f.provider.GenerateUploadGrant(ctx, "logo.webp", storageDomain.PurposeLogo, "u1")
		require.NoError(t, err)
		assert.Empty(t, grant.Headers.Get(storageDomain.OwnerHeader))
		assert.Empty(t, grant.Headers.Get(storageDomain.GCSOwnerHeader))
	})

	t.Run("Error_InvalidPurpose", func(t *testing.T) {
		f := newBlobFixture(t)

		_, err := f.provider.GenerateUploadGrant(ctx, "logo.png", storageDomain.Purpose("avatar"), "u1")
		assert.ErrorIs(t, err, storageDomain.ErrInvalidPurpose)
	})

	t.Run("Error_NoSigner", func(t *testing.T) {
		bucket, err := fileblob.OpenBucket(t.TempDir(), nil)
		require.NoError(t, err)
		p := NewBlobProvider(bucket, discardLogger())
		defer func() { _ = p.Close() }()

		_, err = p.GenerateUploadGrant(ctx, "logo.png", storageDomain.PurposeLogo, "u1")
		assert.ErrorIs(t, err, storageDomain.ErrUploadGrantFailed)
	})
}

func TestOwnerBinding_BeforeSign(t *testing.T) {
	t.Run("Success_S3PutObjectInput", func(t *testing.T) {
		in := &s3.PutObjectInput{}
		b := &ownerBinding{requesterID: "u1"}

		err := b.beforeSign(func(i any) bool {
			p, ok := i.(**s3.PutObjectInput)
			if ok {
				*p = in
			}
			return ok
		})
		require.NoError(t, err)
		assert.Equal(t, "u1", in.Metadata[storageDomain.OwnerMetadataKey])
		assert.Equal(t, storageDomain.OwnerHeader, b.header)
	})

	t.Run("Success_GCSSignedURLOptions", func(t *testing.T) {
		opts := &storage.SignedURLOptions{Headers: []string{"x-goog-meta-other:keep"}}
		b := &ownerBinding{requesterID: "u1"}

		err := b.beforeSign(func(i any) bool {
			p, ok := i.(**storage.SignedURLOptions)
			if ok {
				*p = opts
			}
			return ok
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"x-goog-meta-other:keep", "x-goog-meta-uploaderid:u1"}, opts.Headers)
		assert.Equal(t, storageDomain.GCSOwnerHeader, b.header)
	})

	t.Run("Success_UnsupportedDriver", func(t *testing.T) {
		b := &ownerBinding{requesterID: "u1"}

		err := b.beforeSign(func(any) bool { return false })
		require.NoError(t, err)
		assert.Empty(t, b.header)
	})
}

func TestBlobProvider_GenerateDownloadGrant(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_Owner", func(t *testing.T) {
		f := newBlobFixture(t)
		f.put(t, "u1_logo.png", map[string]string{"uploaderid": "u1"})

		grant, err := f.provider.GenerateDownloadGrant(ctx, "u1_logo.png", "u1")
		require.NoError(t, err)
		assert.Equal(t, "u1_logo.png", grant.Key)

		u, err := url.Parse(grant.DownloadURL)
		require.NoError(t, err)
		key, err := f.signer.KeyFromURL(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, "u1_logo.png", key)
	})

	t.Run("Success_ObjectWithoutOwner", func(t *testing.T) {
		f := newBlobFixture(t)
		f.put(t, "legacy.pdf", nil)

		_, err := f.provider.GenerateDownloadGrant(ctx, "legacy.pdf", "u2")
		require.NoError(t, err)
	})

	t.Run("Error_NotOwner", func(t *testing.T) {
		f := newBlobFixture(t)
		f.put(t, "u1_logo.png", map[string]string{"uploaderid": "u1"})

		grant, err := f.provider.GenerateDownloadGrant(ctx, "u1_logo.png", "u2")
		assert.ErrorIs(t, err, storageDomain.ErrNotOwner)
		assert.Nil(t, grant)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newBlobFixture(t)

		_, err := f.provider.GenerateDownloadGrant(ctx, "u1_logo.png", "u1")
		assert.ErrorIs(t, err, storageDomain.ErrObjectNotFound)
	})

	t.Run("Error_UnsafeKey", func(t *testing.T) {
		f := newBlobFixture(t)

		_, err := f.provider.GenerateDownloadGrant(ctx, "../etc/passwd", "u1")
		assert.ErrorIs(t, err, storageDomain.ErrUnsafeKey)
	})
}

func TestBlobProvider_GeneratePublicDownloadGrant(t *testing.T) {
	ctx := context.Background()
	f := newBlobFixture(t)
	f.put(t, "u1_logo.png", map[string]string{"uploaderid": "u1"})

	grant, err := f.provider.GeneratePublicDownloadGrant(ctx, "u1_logo.png")
	require.NoError(t, err)
	assert.NotEmpty(t, grant.DownloadURL)

	_, err = f.provider.GeneratePublicDownloadGrant(ctx, `u1\logo.png`)
	assert.ErrorIs(t, err, storageDomain.ErrUnsafeKey)
}

func TestBlobProvider_DeleteObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newBlobFixture(t)
		f.put(t, "u1_cv.pdf", map[string]string{"uploaderid": "u1"})

		require.NoError(t, f.provider.DeleteObject(ctx, "u1_cv.pdf", "u1"))
		assert.False(t, f.provider.ObjectExists(ctx, "u1_cv.pdf"))
	})

	t.Run("Error_NotOwnerLeavesObject", func(t *testing.T) {
		f := newBlobFixture(t)
		f.put(t, "u1_cv.pdf", map[string]string{"uploaderid": "u1"})

		err := f.provider.DeleteObject(ctx, "u1_cv.pdf", "u2")
		assert.ErrorIs(t, err, storageDomain.ErrNotOwner)
		assert.True(t, f.provider.ObjectExists(ctx, "u1_cv.pdf"))
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		f := newBlobFixture(t)

		err := f.provider.DeleteObject(ctx, "u1_cv.pdf", "u1")
		assert.ErrorIs(t, err, storageDomain.ErrObjectNotFound)
	})
}

func TestBlobProvider_ObjectExists(t *testing.T) {
	ctx := context.Background()
	f := newBlobFixture(t)
	f.put(t, "u1_logo.png", nil)

	assert.True(t, f.provider.ObjectExists(ctx, "u1_logo.png"))
	assert.False(t, f.provider.ObjectExists(ctx, "u2_logo.png"))
	assert.False(t, f.provider.ObjectExists(ctx, "/u1_logo.png"))
	assert.False(t, f.provider.ObjectExists(ctx, ""))
}

func TestBlobProvider_ObjectMetadata(t *testing.T) {
	ctx := context.Background()
	f := newBlobFixture(t)
	f.put(t, "u1_logo.png", map[string]string{"Uploaderid": "u1"})

	metadata, err := f.provider.ObjectMetadata(ctx, "u1_logo.png")
	require.NoError(t, err)
	owner, ok := storageDomain.OwnerFromMetadata(metadata)
	assert.True(t, ok)
	assert.Equal(t, "u1", owner)
}

func TestBlobProvider_Ping(t *testing.T) {
	f := newBlobFixture(t)
	assert.NoError(t, f.provider.Ping(context.Background()))
}
