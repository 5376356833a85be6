// Package usecase orchestrates storage grants and deletes for authenticated requesters.
package usecase

import (
	"context"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// StorageUseCase defines the storage operations exposed over HTTP.
type StorageUseCase interface {
	// RequestUpload issues an upload grant for a key derived from the principal,
	// purpose and filename extension.
	RequestUpload(
		ctx context.Context,
		principal *authDomain.Principal,
		filename string,
		purpose storageDomain.Purpose,
	) (*storageDomain.UploadGrant, error)

	// RequestDownload issues a download grant after the provider's ownership check.
	RequestDownload(
		ctx context.Context,
		principal *authDomain.Principal,
		key string,
	) (*storageDomain.DownloadGrant, error)

	// RequestPublicDownload issues an unauthenticated download grant. Only keys
	// of a public purpose are served; any other key reads as not found.
	RequestPublicDownload(ctx context.Context, key string) (*storageDomain.DownloadGrant, error)

	// RequestModeratedDownload issues a download grant for a key the caller has
	// already been authorized for by the ownership guard.
	RequestModeratedDownload(
		ctx context.Context,
		principal *authDomain.Principal,
		key string,
	) (*storageDomain.DownloadGrant, error)

	// Delete removes an object owned by the principal.
	Delete(ctx context.Context, principal *authDomain.Principal, key string) error

	// Exists reports whether key is present in the store.
	Exists(ctx context.Context, principal *authDomain.Principal, key string) (bool, error)

	// Ready reports whether the backing store is reachable.
	Ready(ctx context.Context) error
}
