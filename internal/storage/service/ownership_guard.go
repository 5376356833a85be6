package service

import (
	"context"
	"log/slog"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
	storageDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/storage/domain"
)

// OwnershipGuard re-verifies object ownership independently of a Provider.
//
// It is meant for request pipelines that reach the store through paths which
// skip the provider's own check. Existence is not probed first, so a metadata
// read failure is reported as ErrOwnershipCheckFailed rather than not-found.
type OwnershipGuard struct {
	reader MetadataReader
	logger *slog.Logger
}

// NewOwnershipGuard creates an OwnershipGuard reading metadata through reader.
func NewOwnershipGuard(reader MetadataReader, logger *slog.Logger) *OwnershipGuard {
	return &OwnershipGuard{
		reader: reader,
		logger: logger,
	}
}

// Authorize allows principal to act on key.
//
// Admins bypass the check. Otherwise the recorded owner must equal the
// principal ID; objects without owner metadata are allowed.
func (g *OwnershipGuard) Authorize(ctx context.Context, key string, principal *authDomain.Principal) error {
	if principal == nil || principal.ID == "" {
		return apperrors.ErrUnauthorized
	}
	if err := storageDomain.ValidateKey(key); err != nil {
		return err
	}
	if principal.IsAdmin() {
		g.logger.DebugContext(ctx, "ownership check bypassed for admin", slog.String("principal_id", principal.ID))
		return nil
	}

	metadata, err := g.reader.ObjectMetadata(ctx, key)
	if err != nil {
		g.logger.ErrorContext(ctx, "ownership metadata read failed", slog.Any("error", err))
		return storageDomain.ErrOwnershipCheckFailed
	}

	return storageDomain.CheckOwner(metadata, principal.ID)
}
