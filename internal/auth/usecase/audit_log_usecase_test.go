package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
	apperrors "github.com/Synnly/gestion-projet-m2-sub003/internal/errors"
)

// mockAuditLogRepository is a mock implementation of AuditLogRepository for testing.
type mockAuditLogRepository struct {
	mock.Mock
}

func (m *mockAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	args := m.Called(ctx, auditLog)
	return args.Error(0)
}

func (m *mockAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	createdAtFrom, createdAtTo *time.Time,
) ([]*authDomain.AuditLog, error) {
	args := m.Called(ctx, offset, limit, createdAtFrom, createdAtTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*authDomain.AuditLog), args.Error(1)
}

func (m *mockAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	olderThan time.Time,
	dryRun bool,
) (int64, error) {
	args := m.Called(ctx, olderThan, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// inlineTxManager runs the function without a real transaction.
type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func newTestAuditLogUseCase(repo AuditLogRepository, now time.Time) (*auditLogUseCase, *inlineTxManager) {
	txManager := &inlineTxManager{}
	uc := NewAuditLogUseCase(txManager, repo).(*auditLogUseCase)
	uc.now = func() time.Time { return now }
	return uc, txManager
}

func TestAuditLogUseCase_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("Success_AssignsIDAndUTCTimestamp", func(t *testing.T) {
		repo := &mockAuditLogRepository{}
		uc, _ := newTestAuditLogUseCase(repo, now)

		auditLog := &authDomain.AuditLog{
			RequestID:   "req-1",
			RequesterID: "u1",
			Action:      authDomain.ActionUploadGrant,
			ObjectKey:   "u1_cv.pdf",
			Outcome:     authDomain.OutcomeGranted,
		}
		repo.On("Create", ctx, mock.MatchedBy(func(a *authDomain.AuditLog) bool {
			return a.ID != uuid.Nil && a.ID.Version() == 7 && a.CreatedAt.Equal(now) &&
				a.CreatedAt.Location() == time.UTC
		})).Return(nil).Once()

		require.NoError(t, uc.Create(ctx, auditLog))
		repo.AssertExpectations(t)
	})

	t.Run("Error_RepositoryFails", func(t *testing.T) {
		repo := &mockAuditLogRepository{}
		uc, _ := newTestAuditLogUseCase(repo, now)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("db down")).Once()

		err := uc.Create(ctx, &authDomain.AuditLog{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create audit log")
	})
}

func TestAuditLogUseCase_List(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	logs := []*authDomain.AuditLog{{RequesterID: "u1"}}

	repo := &mockAuditLogRepository{}
	uc, _ := newTestAuditLogUseCase(repo, time.Now())
	repo.On("List", ctx, 10, 20, &from, (*time.Time)(nil)).Return(logs, nil).Once()

	got, err := uc.List(ctx, 10, 20, &from, nil)
	require.NoError(t, err)
	assert.Equal(t, logs, got)

	repo.On("List", ctx, 0, 20, (*time.Time)(nil), (*time.Time)(nil)).Return(nil, errors.New("boom")).Once()
	_, err = uc.List(ctx, 0, 20, nil, nil)
	assert.Error(t, err)
}

func TestAuditLogUseCase_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	cutoff := time.Date(2026, 4, 4, 10, 0, 0, 0, time.UTC)

	t.Run("Success_DryRun", func(t *testing.T) {
		repo := &mockAuditLogRepository{}
		uc, txManager := newTestAuditLogUseCase(repo, now)
		repo.On("DeleteOlderThan", mock.Anything, cutoff, true).Return(int64(12), nil).Once()

		count, err := uc.DeleteOlderThan(ctx, 30, true)
		require.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.Equal(t, 1, txManager.calls)
	})

	t.Run("Success_Delete", func(t *testing.T) {
		repo := &mockAuditLogRepository{}
		uc, _ := newTestAuditLogUseCase(repo, now)
		repo.On("DeleteOlderThan", mock.Anything, now, false).Return(int64(3), nil).Once()

		count, err := uc.DeleteOlderThan(ctx, 0, false)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Error_NegativeDays", func(t *testing.T) {
		repo := &mockAuditLogRepository{}
		uc, txManager := newTestAuditLogUseCase(repo, now)

		_, err := uc.DeleteOlderThan(ctx, -1, false)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Zero(t, txManager.calls)
		repo.AssertNotCalled(t, "DeleteOlderThan")
	})

	t.Run("Error_RepositoryFails", func(t *testing.T) {
		repo := &mockAuditLogRepository{}
		uc, _ := newTestAuditLogUseCase(repo, now)
		repo.On("DeleteOlderThan", mock.Anything, cutoff, false).Return(int64(0), errors.New("lock")).Once()

		_, err := uc.DeleteOlderThan(ctx, 30, false)
		assert.Error(t, err)
	})
}

func TestNoopAuditLogUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewNoopAuditLogUseCase()

	assert.NoError(t, uc.Create(ctx, &authDomain.AuditLog{}))

	logs, err := uc.List(ctx, 0, 10, nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, logs)
	assert.Empty(t, logs)

	count, err := uc.DeleteOlderThan(ctx, 7, false)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = uc.DeleteOlderThan(ctx, -7, false)
	assert.ErrorIs(t, err, ErrNegativeDays)
}
