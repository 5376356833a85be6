package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/auth/domain"
)

func TestNewMySQLAuditLogRepository(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLAuditLogRepository(db)
	assert.NotNil(t, repo)
	assert.IsType(t, &MySQLAuditLogRepository{}, repo)
}

func TestMySQLAuditLogRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_BinaryID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		auditLog := newTestAuditLog()
		idBinary, err := auditLog.ID.MarshalBinary()
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO storage_audit_logs`).
			WithArgs(
				idBinary,
				"req-1",
				"u1",
				"download_grant",
				"u1_logo.png",
				"granted",
				[]byte(`{"purpose":"logo"}`),
				auditLog.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewMySQLAuditLogRepository(db).Create(ctx, auditLog))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_Exec", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		mock.ExpectExec(`INSERT INTO storage_audit_logs`).WillReturnError(errors.New("duplicate entry"))

		err = NewMySQLAuditLogRepository(db).Create(ctx, newTestAuditLog())
		assert.Error(t, err)
	})
}

func TestMySQLAuditLogRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		id := uuid.Must(uuid.NewV7())
		idBinary, err := id.MarshalBinary()
		require.NoError(t, err)
		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows(auditLogColumns).
			AddRow(idBinary, "req-1", "u1", "public_download_grant", "u1_logo.png", "granted", nil, from)
		mock.ExpectQuery(`WHERE created_at >= \? ORDER BY created_at DESC LIMIT \? OFFSET \?`).
			WithArgs(from, 5, 0).
			WillReturnRows(rows)

		logs, err := NewMySQLAuditLogRepository(db).List(ctx, 0, 5, &from, nil)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, id, logs[0].ID)
		assert.Equal(t, authDomain.ActionPublicDownloadGrant, logs[0].Action)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_InvalidBinaryID", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer func() { _ = db.Close() }()

		rows := sqlmock.NewRows(auditLogColumns).
			AddRow([]byte{1, 2, 3}, "r", "u1", "delete", "k", "granted", nil, time.Now())
		mock.ExpectQuery(`FROM storage_audit_logs`).WillReturnRows(rows)

		_, err = NewMySQLAuditLogRepository(db).List(ctx, 0, 10, nil, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unmarshal audit log id")
	})
}

func TestMySQLAuditLogRepository_DeleteOlderThan(t *testing.T) {
	ctx := context.Background()
	cutoff := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM storage_audit_logs WHERE created_at < \?`).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`DELETE FROM storage_audit_logs WHERE created_at < \?`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewMySQLAuditLogRepository(db)

	count, err := repo.DeleteOlderThan(ctx, cutoff, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.DeleteOlderThan(ctx, cutoff, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
