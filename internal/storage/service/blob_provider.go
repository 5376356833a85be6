package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"

	// Register blob drivers
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
)

// BlobProvider implements Provider on a gocloud.dev/blob bucket.
//
// Drivers are selected by URL scheme (s3://, gs://, file://). Owner metadata
// is bound into the upload signature on the s3 and gcs drivers. The file
// driver cannot sign headers, so its grants carry no owner header and the
// object is uploaded without owner metadata.
type BlobProvider struct {
	bucket *blob.Bucket
	logger *slog.Logger
	now    func() time.Time
}

// OpenBlobBucket opens the bucket identified by a gocloud.dev/blob URL.
func OpenBlobBucket(ctx context.Context, bucketURL string) (*blob.Bucket, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open blob bucket: %w", err)
	}
	return bucket, nil
}

// NewBlobProvider creates a BlobProvider. The provider owns bucket and closes it in Close.
func NewBlobProvider(bucket *blob.Bucket, logger *slog.Logger) *BlobProvider {
	return &BlobProvider{
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateUploadGrant implements Provider.
func (p *BlobProvider) GenerateUploadGrant(
	ctx context.Context,
	originalFilename string,
	purpose storageDomain.Purpose,
	requesterID string,
) (*storageDomain.UploadGrant, error) {
	key, contentType, err := storageDomain.DeriveObjectKey(requesterID, purpose, originalFilename)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", contentType)

	binding := &ownerBinding{requesterID: requesterID}
	opts := &blob.SignedURLOptions{
		Expiry:      storageDomain.UploadGrantExpiry,
		Method:      http.MethodPut,
		ContentType: contentType,
		BeforeSign:  binding.beforeSign,
	}

	issuedAt := p.now()
	u, err := p.bucket.SignedURL(ctx, key, opts)
	if err != nil {
		p.logger.ErrorContext(ctx, "presign upload failed", slog.Any("error", err))
		return nil, storageDomain.ErrUploadGrantFailed
	}
	if binding.header != "" {
		headers.Set(binding.header, requesterID)
	}

	return &storageDomain.UploadGrant{
		Key:       key,
		UploadURL: u,
		Method:    http.MethodPut,
		Headers:   headers,
		ExpiresAt: issuedAt.Add(storageDomain.UploadGrantExpiry),
	}, nil
}

// ownerBinding signs the uploader into a PUT on drivers that expose their
// signing options. header is the owner header the client must send, or empty
// when the driver could not bind it.
type ownerBinding struct {
	requesterID string
	header      string
}

func (b *ownerBinding) beforeSign(asFunc func(any) bool) error {
	var in *s3.PutObjectInput
	if asFunc(&in) {
		if in.Metadata == nil {
			in.Metadata = map[string]string{}
		}
		in.Metadata[storageDomain.OwnerMetadataKey] = b.requesterID
		b.header = storageDomain.OwnerHeader
		return nil
	}

	var gcsOpts *storage.SignedURLOptions
	if asFunc(&gcsOpts) {
		gcsOpts.Headers = append(gcsOpts.Headers, storageDomain.GCSOwnerHeader+":"+b.requesterID)
		b.header = storageDomain.GCSOwnerHeader
	}
	return nil
}

// GenerateDownloadGrant implements Provider.
func (p *BlobProvider) GenerateDownloadGrant(
	ctx context.Context,
	key, requesterID string,
) (*storageDomain.DownloadGrant, error) {
	if err := verifyOwnership(ctx, p, key, requesterID, p.logger); err != nil {
		return nil, err
	}
	return p.signGet(ctx, key)
}

// GeneratePublicDownloadGrant implements Provider.
func (p *BlobProvider) GeneratePublicDownloadGrant(
	ctx context.Context,
	key string,
) (*storageDomain.DownloadGrant, error) {
	if err := storageDomain.ValidateKey(key); err != nil {
		return nil, err
	}
	return p.signGet(ctx, key)
}

// DeleteObject implements Provider.
func (p *BlobProvider) DeleteObject(ctx context.Context, key, requesterID string) error {
	if err := verifyOwnership(ctx, p, key, requesterID, p.logger); err != nil {
		return err
	}

	if err := p.bucket.Delete(ctx, key); err != nil {
		p.logger.ErrorContext(ctx, "remove object failed", slog.Any("error", err))
		return storageDomain.ErrDeleteFailed
	}
	return nil
}

// ObjectExists implements Provider.
func (p *BlobProvider) ObjectExists(ctx context.Context, key string) bool {
	if storageDomain.ValidateKey(key) != nil {
		return false
	}
	exists, err := p.bucket.Exists(ctx, key)
	return err == nil && exists
}

// ObjectMetadata implements MetadataReader.
//
// gocloud lower-cases metadata keys.
func (p *BlobProvider) ObjectMetadata(ctx context.Context, key string) (map[string]string, error) {
	if err := storageDomain.ValidateKey(key); err != nil {
		return nil, err
	}
	attrs, err := p.bucket.Attributes(ctx, key)
	if err != nil {
		return nil, err
	}
	return attrs.Metadata, nil
}

// Ping implements Provider.
func (p *BlobProvider) Ping(ctx context.Context) error {
	ok, err := p.bucket.IsAccessible(ctx)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !ok {
		return fmt.Errorf("bucket is not accessible")
	}
	return nil
}

// Close implements Provider.
func (p *BlobProvider) Close() error {
	return p.bucket.Close()
}

func (p *BlobProvider) signGet(ctx context.Context, key string) (*storageDomain.DownloadGrant, error) {
	issuedAt := p.now()
	u, err := p.bucket.SignedURL(ctx, key, &blob.SignedURLOptions{
		Expiry: storageDomain.DownloadGrantExpiry,
		Method: http.MethodGet,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "presign download failed", slog.Any("error", err))
		return nil, storageDomain.ErrDownloadGrantFailed
	}

	return &storageDomain.DownloadGrant{
		Key:         key,
		DownloadURL: u,
		ExpiresAt:   issuedAt.Add(storageDomain.DownloadGrantExpiry),
	}, nil
}
