// Package service implements storage providers and the ownership guard.
//
// A Provider is the only component that talks to the object store. It
// translates grant and delete intents into presigned URLs and store calls and
// checks ownership from object metadata before minting private grants or
// removing objects. Exactly one implementation is selected at startup.
package service

import (
	"context"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// MetadataReader reads the user metadata stored with an object.
type MetadataReader interface {
	// ObjectMetadata returns the object's user metadata. Errors are returned as
	// reported by the store so callers decide how to classify them.
	ObjectMetadata(ctx context.Context, key string) (map[string]string, error)
}

// Provider is the storage capability interface.
type Provider interface {
	MetadataReader

	// GenerateUploadGrant derives "<requesterID>_<purpose>.<ext>" and returns a
	// presigned PUT for exactly that key, valid for UploadGrantExpiry.
	GenerateUploadGrant(
		ctx context.Context,
		originalFilename string,
		purpose storageDomain.Purpose,
		requesterID string,
	) (*storageDomain.UploadGrant, error)

	// GenerateDownloadGrant verifies existence and ownership, then returns a
	// presigned GET valid for DownloadGrantExpiry.
	GenerateDownloadGrant(ctx context.Context, key, requesterID string) (*storageDomain.DownloadGrant, error)

	// GeneratePublicDownloadGrant returns a presigned GET without an ownership check.
	GeneratePublicDownloadGrant(ctx context.Context, key string) (*storageDomain.DownloadGrant, error)

	// DeleteObject verifies existence and ownership, then removes the object.
	DeleteObject(ctx context.Context, key, requesterID string) error

	// ObjectExists is a best-effort probe. Every store error reads as false.
	ObjectExists(ctx context.Context, key string) bool

	// Ping reports whether the configured bucket is reachable.
	Ping(ctx context.Context) error

	// Close releases resources held by the provider.
	Close() error
}
