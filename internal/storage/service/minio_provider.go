package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// MinioClient is the subset of *minio.Client used by MinioProvider.
type MinioClient interface {
	PresignHeader(
		ctx context.Context,
		method, bucketName, objectName string,
		expires time.Duration,
		reqParams url.Values,
		extraHeaders http.Header,
	) (*url.URL, error)
	PresignedGetObject(
		ctx context.Context,
		bucketName, objectName string,
		expires time.Duration,
		reqParams url.Values,
	) (*url.URL, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	BucketExists(ctx context.Context, bucketName string) (bool, error)
}

// MinioConfig holds connection settings for an S3-compatible endpoint.
type MinioConfig struct {
	Endpoint  string
	Port      int
	UseSSL    bool
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
}

// MinioProvider implements Provider against MinIO or any S3-compatible store.
//
// Upload grants sign the owner header into the URL, so the store rejects a PUT
// that omits it or changes its value.
type MinioProvider struct {
	client MinioClient
	bucket string
	logger *slog.Logger
	now    func() time.Time
}

// NewMinioClient builds a minio client from cfg.
//
// Setting Region lets the client presign without a bucket-location round trip.
func NewMinioClient(cfg MinioConfig) (*minio.Client, error) {
	endpoint := cfg.Endpoint
	if cfg.Port > 0 {
		endpoint = fmt.Sprintf("%s:%d", cfg.Endpoint, cfg.Port)
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	return client, nil
}

// NewMinioProvider creates a MinioProvider for bucket.
func NewMinioProvider(client MinioClient, bucket string, logger *slog.Logger) *MinioProvider {
	return &MinioProvider{
		client: client,
		bucket: bucket,
		logger: logger,
		now:    time.Now,
	}
}

// GenerateUploadGrant implements Provider.
func (p *MinioProvider) GenerateUploadGrant(
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
	headers.Set(storageDomain.OwnerHeader, requesterID)
	headers.Set("Content-Type", contentType)

	issuedAt := p.now()
	u, err := p.client.PresignHeader(
		ctx,
		http.MethodPut,
		p.bucket,
		key,
		storageDomain.UploadGrantExpiry,
		nil,
		headers,
	)
	if err != nil {
		p.logger.ErrorContext(ctx, "presign upload failed", slog.Any("error", err))
		return nil, storageDomain.ErrUploadGrantFailed
	}

	return &storageDomain.UploadGrant{
		Key:       key,
		UploadURL: u.String(),
		Method:    http.MethodPut,
		Headers:   headers,
		ExpiresAt: issuedAt.Add(storageDomain.UploadGrantExpiry),
	}, nil
}

// GenerateDownloadGrant implements Provider.
func (p *MinioProvider) GenerateDownloadGrant(
	ctx context.Context,
	key, requesterID string,
) (*storageDomain.DownloadGrant, error) {
	if err := verifyOwnership(ctx, p, key, requesterID, p.logger); err != nil {
		return nil, err
	}
	return p.presignGet(ctx, key)
}

// GeneratePublicDownloadGrant implements Provider.
func (p *MinioProvider) GeneratePublicDownloadGrant(
	ctx context.Context,
	key string,
) (*storageDomain.DownloadGrant, error) {
	if err := storageDomain.ValidateKey(key); err != nil {
		return nil, err
	}
	return p.presignGet(ctx, key)
}

// DeleteObject implements Provider.
func (p *MinioProvider) DeleteObject(ctx context.Context, key, requesterID string) error {
	if err := verifyOwnership(ctx, p, key, requesterID, p.logger); err != nil {
		return err
	}

	if err := p.client.RemoveObject(ctx, p.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		p.logger.ErrorContext(ctx, "remove object failed", slog.Any("error", err))
		return storageDomain.ErrDeleteFailed
	}
	return nil
}

// ObjectExists implements Provider.
func (p *MinioProvider) ObjectExists(ctx context.Context, key string) bool {
	if storageDomain.ValidateKey(key) != nil {
		return false
	}
	_, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	return err == nil
}

// ObjectMetadata implements MetadataReader.
//
// minio returns user metadata with canonical header casing ("Uploaderid").
func (p *MinioProvider) ObjectMetadata(ctx context.Context, key string) (map[string]string, error) {
	if err := storageDomain.ValidateKey(key); err != nil {
		return nil, err
	}
	info, err := p.client.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return nil, err
	}
	return info.UserMetadata, nil
}

// Ping implements Provider.
func (p *MinioProvider) Ping(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %q does not exist", p.bucket)
	}
	return nil
}

// Close implements Provider. The minio client holds no resources to release.
func (p *MinioProvider) Close() error {
	return nil
}

func (p *MinioProvider) presignGet(ctx context.Context, key string) (*storageDomain.DownloadGrant, error) {
	issuedAt := p.now()
	u, err := p.client.PresignedGetObject(ctx, p.bucket, key, storageDomain.DownloadGrantExpiry, nil)
	if err != nil {
		p.logger.ErrorContext(ctx, "presign download failed", slog.Any("error", err))
		return nil, storageDomain.ErrDownloadGrantFailed
	}

	return &storageDomain.DownloadGrant{
		Key:         key,
		DownloadURL: u.String(),
		ExpiresAt:   issuedAt.Add(storageDomain.DownloadGrantExpiry),
	}, nil
}
