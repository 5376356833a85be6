package usecase

import (
	"context"
	"log/slog"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
	storageService "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/service"
)

// storageUseCase implements StorageUseCase on top of a single Provider.
type storageUseCase struct {
	provider storageService.Provider
	logger   *slog.Logger
}

// NewStorageUseCase creates a StorageUseCase backed by provider.
func NewStorageUseCase(provider storageService.Provider, logger *slog.Logger) StorageUseCase {
	return &storageUseCase{
		provider: provider,
		logger:   logger,
	}
}

func (s *storageUseCase) RequestUpload(
	ctx context.Context,
	principal *authDomain.Principal,
	filename string,
	purpose storageDomain.Purpose,
) (*storageDomain.UploadGrant, error) {
	requesterID, err := requester(principal)
	if err != nil {
		return nil, err
	}

	grant, err := s.provider.GenerateUploadGrant(ctx, filename, purpose, requesterID)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "upload grant issued",
		slog.String("requester_id", requesterID),
		slog.String("purpose", string(purpose)),
	)
	return grant, nil
}

func (s *storageUseCase) RequestDownload(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (*storageDomain.DownloadGrant, error) {
	requesterID, err := requester(principal)
	if err != nil {
		return nil, err
	}
	return s.provider.GenerateDownloadGrant(ctx, key, requesterID)
}

func (s *storageUseCase) RequestPublicDownload(
	ctx context.Context,
	key string,
) (*storageDomain.DownloadGrant, error) {
	if err := storageDomain.ValidateKey(key); err != nil {
		return nil, err
	}

	purpose, ok := storageDomain.PurposeFromKey(key)
	if !ok || !purpose.IsPublic() {
		return nil, storageDomain.ErrObjectNotFound
	}
	if !s.provider.ObjectExists(ctx, key) {
		return nil, storageDomain.ErrObjectNotFound
	}

	return s.provider.GeneratePublicDownloadGrant(ctx, key)
}

func (s *storageUseCase) RequestModeratedDownload(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (*storageDomain.DownloadGrant, error) {
	if _, err := requester(principal); err != nil {
		return nil, err
	}
	if err := storageDomain.ValidateKey(key); err != nil {
		return nil, err
	}
	if !s.provider.ObjectExists(ctx, key) {
		return nil, storageDomain.ErrObjectNotFound
	}

	return s.provider.GeneratePublicDownloadGrant(ctx, key)
}

func (s *storageUseCase) Delete(ctx context.Context, principal *authDomain.Principal, key string) error {
	requesterID, err := requester(principal)
	if err != nil {
		return err
	}
	if err := s.provider.DeleteObject(ctx, key, requesterID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "object deleted", slog.String("requester_id", requesterID))
	return nil
}

func (s *storageUseCase) Exists(
	ctx context.Context,
	principal *authDomain.Principal,
	key string,
) (bool, error) {
	if _, err := requester(principal); err != nil {
		return false, err
	}
	if err := storageDomain.ValidateKey(key); err != nil {
		return false, err
	}
	return s.provider.ObjectExists(ctx, key), nil
}

func (s *storageUseCase) Ready(ctx context.Context) error {
	return s.provider.Ping(ctx)
}

func requester(principal *authDomain.Principal) (string, error) {
	if principal == nil || principal.ID == "" {
		return "", apperrors.ErrUnauthorized
	}
	return principal.ID, nil
}
