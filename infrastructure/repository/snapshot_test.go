package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/database/postgres"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

func newMockConn(t *testing.T) (*postgres.Connection, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return postgres.NewFromDB(db), mock
}

var snapshotDay = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newSnapshot() *domain.Snapshot {
	now := snapshotDay.Add(9 * time.Hour)
	return &domain.Snapshot{
		ID:           "snap-new",
		ScopeID:      "pod-1",
		RefreshType:  domain.RefreshTypeAdInsights,
		DatePreset:   "last_7d",
		Status:       domain.SnapshotStatusInProgress,
		SnapshotDate: snapshotDay,
		Metadata:     map[string]any{"trigger": "manual"},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func snapshotRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "scope_id", "refresh_type", "date_preset", "status", "snapshot_date",
		"record_count", "error_message", "metadata", "created_at", "updated_at",
	})
}

func TestSnapshotRepository_StartForDay(t *testing.T) {
	tests := []struct {
		name         string
		returnedID   string
		replaced     bool
		wantDelete   bool
		wantReplaced bool
	}{
		{
			name:       "Primeira execução do dia cria snapshot",
			returnedID: "snap-new",
		},
		{
			name:         "Reexecução no mesmo dia reaproveita snapshot e apaga métricas",
			returnedID:   "snap-old",
			replaced:     true,
			wantDelete:   true,
			wantReplaced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			repo := NewSnapshotRepository(conn)

			mock.ExpectBegin()
			mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO snapshots")).
				WithArgs("snap-new", "pod-1", domain.RefreshTypeAdInsights, "last_7d", domain.SnapshotStatusInProgress,
					snapshotDay, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "replaced"}).
					AddRow(tt.returnedID, snapshotDay, tt.replaced))
			if tt.wantDelete {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM snapshot_metrics WHERE snapshot_id = $1")).
					WithArgs("snap-old").
					WillReturnResult(sqlmock.NewResult(0, 3))
			}
			mock.ExpectCommit()

			snapshot, replaced, err := repo.StartForDay(context.Background(), newSnapshot())

			require.NoError(t, err)
			assert.Equal(t, tt.returnedID, snapshot.ID)
			assert.Equal(t, tt.wantReplaced, replaced)
			assert.Equal(t, domain.SnapshotStatusInProgress, snapshot.Status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSnapshotRepository_StartForDay_RollbackQuandoDeleteFalha(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO snapshots")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "replaced"}).AddRow("snap-old", snapshotDay, true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM snapshot_metrics")).
		WillReturnError(errors.New("lock timeout"))
	mock.ExpectRollback()

	_, _, err := repo.StartForDay(context.Background(), newSnapshot())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_GetByID(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, scope_id")).
		WithArgs("snap-1").
		WillReturnRows(snapshotRows().AddRow(
			"snap-1", "pod-1", "ad_insights", "last_7d", "completed", snapshotDay,
			int64(42), nil, []byte(`{"trigger":"cron"}`), snapshotDay, snapshotDay,
		))

	snapshot, err := repo.GetByID(context.Background(), "snap-1")

	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, domain.SnapshotStatusCompleted, snapshot.Status)
	require.NotNil(t, snapshot.RecordCount)
	assert.Equal(t, 42, *snapshot.RecordCount)
	assert.Nil(t, snapshot.ErrorMessage)
	assert.Equal(t, "cron", snapshot.Metadata["trigger"])
}

func TestSnapshotRepository_GetByID_NaoEncontrado(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, scope_id")).
		WithArgs("nope").
		WillReturnRows(snapshotRows())

	snapshot, err := repo.GetByID(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

func TestSnapshotRepository_UpdateStatus(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewSnapshotRepository(conn)

	message := "db down"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE snapshots SET status = $1, updated_at = $2, error_message = $3, metadata = $4 WHERE id = $5 RETURNING")).
		WithArgs(domain.SnapshotStatusFailed, sqlmock.AnyArg(), message, sqlmock.AnyArg(), "snap-1").
		WillReturnRows(snapshotRows().AddRow(
			"snap-1", "pod-1", "ad_insights", "last_7d", "failed", snapshotDay,
			nil, message, []byte(`{"error":"db down"}`), snapshotDay, snapshotDay,
		))

	snapshot, err := repo.UpdateStatus(context.Background(), &domain.SnapshotStatusUpdate{
		SnapshotID:   "snap-1",
		Status:       domain.SnapshotStatusFailed,
		ErrorMessage: &message,
		Metadata:     map[string]any{"error": message},
		UpdatedAt:    snapshotDay,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.SnapshotStatusFailed, snapshot.Status)
	assert.Equal(t, message, *snapshot.ErrorMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotRepository_ListHistory(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM snapshots WHERE scope_id = $1 AND refresh_type = $2 ORDER BY snapshot_date DESC, created_at DESC LIMIT 2")).
		WithArgs("pod-1", domain.RefreshTypeAdInsights).
		WillReturnRows(snapshotRows().
			AddRow("snap-2", "pod-1", "ad_insights", "last_7d", "completed", snapshotDay, int64(3), nil, nil, snapshotDay, snapshotDay).
			AddRow("snap-1", "pod-1", "ad_insights", "last_7d", "failed", snapshotDay.AddDate(0, 0, -1), nil, "boom", nil, snapshotDay, snapshotDay))

	snapshots, err := repo.ListHistory(context.Background(), domain.SnapshotFilter{ScopeID: "pod-1", RefreshType: domain.RefreshTypeAdInsights}, 2)

	require.NoError(t, err)
	require.Len(t, snapshots, 2)
	assert.Equal(t, "snap-2", snapshots[0].ID)
	assert.Nil(t, snapshots[0].Metadata)
	assert.Equal(t, "boom", *snapshots[1].ErrorMessage)
}

func TestSnapshotRepository_GetLatest(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewSnapshotRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE scope_id = $1 AND status = $2 ORDER BY snapshot_date DESC, updated_at DESC LIMIT 1")).
		WithArgs("pod-1", domain.SnapshotStatusCompleted).
		WillReturnRows(snapshotRows().
			AddRow("snap-2", "pod-1", "ad_insights", "last_7d", "completed", snapshotDay, int64(3), nil, nil, snapshotDay, snapshotDay))

	snapshot, err := repo.GetLatest(context.Background(), domain.SnapshotFilter{ScopeID: "pod-1", Status: domain.SnapshotStatusCompleted})

	require.NoError(t, err)
	assert.Equal(t, "snap-2", snapshot.ID)
}
