package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	"github.com/Synnly/gestion-projet-m2-sub003/internal/database"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// ErrNegativeDays indicates a retention window below zero.
var ErrNegativeDays = apperrors.Wrap(apperrors.ErrInvalidInput, "days must be non-negative")

// auditLogUseCase implements AuditLogUseCase interface for recording audit logs.
type auditLogUseCase struct {
	txManager    database.TxManager
	auditLogRepo AuditLogRepository
	now          func() time.Time
}

// Create records an audit log entry. Generates a UUIDv7 identifier and a UTC
// timestamp. Metadata is optional and can be nil.
func (a *auditLogUseCase) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	auditLog.ID = uuid.Must(uuid.NewV7())
	auditLog.CreatedAt = a.now().UTC()

	if err := a.auditLogRepo.Create(ctx, auditLog); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List retrieves audit logs ordered by created_at descending with pagination.
func (a *auditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditLog, error) {
	auditLogs, err := a.auditLogRepo.List(ctx, offset, limit, createdAtFrom, createdAtTo)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}

	return auditLogs, nil
}

// DeleteOlderThan removes audit logs created more than days ago, inside one transaction.
func (a *auditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, ErrNegativeDays
	}

	cutoff := a.now().UTC().AddDate(0, 0, -days)

	var count int64
	err := a.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		count, err = a.auditLogRepo.DeleteOlderThan(ctx, cutoff, dryRun)
		return err
	})
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}

	return count, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(txManager database.TxManager, auditLogRepo AuditLogRepository) AuditLogUseCase {
	return &auditLogUseCase{
		txManager:    txManager,
		auditLogRepo: auditLogRepo,
		now:          time.Now,
	}
}

// noopAuditLogUseCase discards audit logs. Used when no database is configured.
type noopAuditLogUseCase struct{}

func (noopAuditLogUseCase) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	return nil
}

func (noopAuditLogUseCase) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditLog, error) {
	return []*authDomain.AuditLog{}, nil
}

func (noopAuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, ErrNegativeDays
	}
	return 0, nil
}

// NewNoopAuditLogUseCase returns an AuditLogUseCase that stores nothing.
func NewNoopAuditLogUseCase() AuditLogUseCase {
	return noopAuditLogUseCase{}
}
