// Package usecase records and queries storage access audit logs.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
)

// AuditLogRepository defines persistence operations for audit logs.
// Implementations must support transaction-aware operations via context propagation.
type AuditLogRepository interface {
	// Create stores a new audit log.
	Create(ctx context.Context, auditLog *authDomain.AuditLog) error

	// List returns audit logs newest first. Nil bounds are not applied.
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*authDomain.AuditLog, error)

	// DeleteOlderThan removes, or with dryRun counts, audit logs created before olderThan.
	DeleteOlderThan(ctx context.Context, olderThan time.Time, dryRun bool) (int64, error)
}

// AuditLogUseCase manages the access audit trail of the storage gateway.
type AuditLogUseCase interface {
	// Create assigns an ID and timestamp to auditLog and persists it.
	Create(ctx context.Context, auditLog *authDomain.AuditLog) error

	// List retrieves audit logs ordered by created_at descending. Both time
	// bounds are inclusive and optional.
	List(
		ctx context.Context,
		offset, limit int,
		createdAtFrom, createdAtTo *time.Time,
	) ([]*authDomain.AuditLog, error)

	// DeleteOlderThan removes audit logs older than days. Use dryRun to only count them.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
