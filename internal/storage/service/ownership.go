package service

import (
	"context"
	"log/slog"

	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// verifyOwnership runs the shared validate, stat and owner-check sequence.
//
// Any metadata read failure becomes ErrObjectNotFound so callers cannot tell a
// missing object from one they may not see. The cause is logged at debug level.
func verifyOwnership(
	ctx context.Context,
	reader MetadataReader,
	key, requesterID string,
	logger *slog.Logger,
) error {
	if err := storageDomain.ValidateKey(key); err != nil {
		return err
	}
	if requesterID == "" {
		return storageDomain.ErrMissingRequester
	}

	metadata, err := reader.ObjectMetadata(ctx, key)
	if err != nil {
		logger.DebugContext(ctx, "object lookup failed", slog.Any("error", err))
		return storageDomain.ErrObjectNotFound
	}

	return storageDomain.CheckOwner(metadata, requesterID)
}
