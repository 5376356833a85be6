package usecase

import (
	"context"
	"time"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/metrics"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// storageUseCaseWithMetrics decorates StorageUseCase with metrics instrumentation.
type storageUseCaseWithMetrics struct {
	next    StorageUseCase
	metrics metrics.BusinessMetrics
}

// NewStorageUseCaseWithMetrics wraps a StorageUseCase with metrics recording.
func NewStorageUseCaseWithMetrics(useCase StorageUseCase, m metrics.BusinessMetrics) StorageUseCase {
	return &storageUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// RequestUpload records metrics for upload grants.
func (s *storageUseCaseWithMetrics) RequestUpload(
	ctx context.Context,
	principal *authDomain.Principal,
	filename string,
	purpose storageDomain.Purpose,
) (*storageDomain.UploadGrant, error) {
	start := time.Now()
	grant, err := s.next.RequestUpload(ctx, principal, filename, purpose)
	s.record(ctx, "upload_grant", start, err)
	return grant, err
}

// RequestDownload records metrics for private download grants.
func (s *storageUseCaseWithMetrics) RequestDownload(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (*storageDomain.DownloadGrant, error) {
	start := time.Now()
	grant, err := s.next.RequestDownload(ctx, principal, key)
	s.record(ctx, "download_grant", start, err)
	return grant, err
}

// RequestPublicDownload records metrics for public download grants.
func (s *storageUseCaseWithMetrics) RequestPublicDownload(
	ctx context.Context,
	key string,
) (*storageDomain.DownloadGrant, error) {
	start := time.Now()
	grant, err := s.next.RequestPublicDownload(ctx, key)
	s.record(ctx, "public_download_grant", start, err)
	return grant, err
}

// RequestModeratedDownload records metrics for moderated download grants.
func (s *storageUseCaseWithMetrics) RequestModeratedDownload(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (*storageDomain.DownloadGrant, error) {
	start := time.Now()
	grant, err := s.next.RequestModeratedDownload(ctx, principal, key)
	s.record(ctx, "moderated_download_grant", start, err)
	return grant, err
}

// Delete records metrics for object deletion.
func (s *storageUseCaseWithMetrics) Delete(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) error {
	start := time.Now()
	err := s.next.Delete(ctx, principal, key)
	s.record(ctx, "object_delete", start, err)
	return err
}

// Exists records metrics for existence probes.
func (s *storageUseCaseWithMetrics) Exists(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (bool, error) {
	start := time.Now()
	exists, err := s.next.Exists(ctx, principal, key)
	s.record(ctx, "object_exists", start, err)
	return exists, err
}

// Ready is not instrumented.
func (s *storageUseCaseWithMetrics) Ready(ctx context.Context) error {
	return s.next.Ready(ctx)
}

func (s *storageUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "storage", operation, status)
	s.metrics.RecordDuration(ctx, "storage", operation, time.Since(start), status)
}
