package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/database/postgres"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

const (
	snapshotsTable       = "snapshots"
	snapshotMetricsTable = "snapshot_metrics"
)

const snapshotColumns = "id, scope_id, refresh_type, date_preset, status, snapshot_date, record_count, error_message, metadata, created_at, updated_at"

type SnapshotRepository interface {
	// StartForDay cria o snapshot do dia ou reaproveita o existente, apagando suas métricas.
	// O bool indica se um snapshot existente foi substituído.
	StartForDay(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, bool, error)
	GetByID(ctx context.Context, snapshotID string) (*domain.Snapshot, error)
	UpdateStatus(ctx context.Context, update *domain.SnapshotStatusUpdate) (*domain.Snapshot, error)
	GetLatest(ctx context.Context, filter domain.SnapshotFilter) (*domain.Snapshot, error)
	ListHistory(ctx context.Context, filter domain.SnapshotFilter, limit int) ([]*domain.Snapshot, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{conn: conn}
}

func (r *snapshotRepository) StartForDay(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, bool, error) {
	metadata, err := json.Marshal(snapshot.Metadata)
	if err != nil {
		return nil, false, fmt.Errorf("erro ao serializar metadata: %w", err)
	}

	upsertSQL, upsertArgs, err := squirrel.
		Insert(snapshotsTable).
		Columns("id", "scope_id", "refresh_type", "date_preset", "status", "snapshot_date", "metadata", "created_at", "updated_at").
		Values(
			snapshot.ID,
			snapshot.ScopeID,
			snapshot.RefreshType,
			snapshot.DatePreset,
			snapshot.Status,
			snapshot.SnapshotDate,
			metadata,
			snapshot.CreatedAt,
			snapshot.UpdatedAt,
		).
		Suffix(`
			ON CONFLICT (scope_id, refresh_type, date_preset, snapshot_date) DO UPDATE SET
				status = EXCLUDED.status,
				metadata = EXCLUDED.metadata,
				record_count = NULL,
				error_message = NULL,
				updated_at = EXCLUDED.updated_at
			RETURNING id, created_at, (xmax <> 0) AS replaced
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, false, fmt.Errorf("failed to build query: %w", err)
	}

	saved := *snapshot
	var replaced bool

	err = r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		if err := q.QueryRowContext(ctx, upsertSQL, upsertArgs...).Scan(&saved.ID, &saved.CreatedAt, &replaced); err != nil {
			return databaseError(err)
		}

		if !replaced {
			return nil
		}

		deleteSQL, deleteArgs, err := squirrel.
			Delete(snapshotMetricsTable).
			Where(squirrel.Eq{"snapshot_id": saved.ID}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		if _, err := q.ExecContext(ctx, deleteSQL, deleteArgs...); err != nil {
			return databaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &saved, replaced, nil
}

func (r *snapshotRepository) GetByID(ctx context.Context, snapshotID string) (*domain.Snapshot, error) {
	query, args, err := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		Where(squirrel.Eq{"id": snapshotID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryOne(ctx, query, args...)
}

func (r *snapshotRepository) UpdateStatus(ctx context.Context, update *domain.SnapshotStatusUpdate) (*domain.Snapshot, error) {
	queryBuilder := squirrel.
		Update(snapshotsTable).
		Set("status", update.Status).
		Set("updated_at", update.UpdatedAt).
		Where(squirrel.Eq{"id": update.SnapshotID}).
		Suffix("RETURNING " + snapshotColumns).
		PlaceholderFormat(squirrel.Dollar)

	if update.RecordCount != nil {
		queryBuilder = queryBuilder.Set("record_count", *update.RecordCount)
	}
	if update.ErrorMessage != nil {
		queryBuilder = queryBuilder.Set("error_message", *update.ErrorMessage)
	}
	if update.Metadata != nil {
		metadata, err := json.Marshal(update.Metadata)
		if err != nil {
			return nil, fmt.Errorf("erro ao serializar metadata: %w", err)
		}
		queryBuilder = queryBuilder.Set("metadata", metadata)
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.queryOne(ctx, query, args...)
}

func (r *snapshotRepository) GetLatest(ctx context.Context, filter domain.SnapshotFilter) (*domain.Snapshot, error) {
	query, args, err := filtered(filter).
		OrderBy("snapshot_date DESC", "updated_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryOne(ctx, query, args...)
}

func (r *snapshotRepository) ListHistory(ctx context.Context, filter domain.SnapshotFilter, limit int) ([]*domain.Snapshot, error) {
	query, args, err := filtered(filter).
		OrderBy("snapshot_date DESC", "created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.Snapshot, 0, limit)
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return snapshots, nil
}

func filtered(filter domain.SnapshotFilter) squirrel.SelectBuilder {
	queryBuilder := squirrel.
		Select(snapshotColumns).
		From(snapshotsTable).
		PlaceholderFormat(squirrel.Dollar)

	if filter.ScopeID != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"scope_id": filter.ScopeID})
	}
	if filter.RefreshType != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"refresh_type": filter.RefreshType})
	}
	if filter.DatePreset != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"date_preset": filter.DatePreset})
	}
	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": filter.Status})
	}

	return queryBuilder
}

// queryOne devolve nil, nil quando nenhuma linha é encontrada.
func (r *snapshotRepository) queryOne(ctx context.Context, query string, args ...any) (*domain.Snapshot, error) {
	snapshot, err := scanSnapshot(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, databaseError(err)
	}
	return snapshot, nil
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{}
	var (
		recordCount sql.NullInt64
		metadata    []byte
	)

	if err := row.Scan(
		&snapshot.ID,
		&snapshot.ScopeID,
		&snapshot.RefreshType,
		&snapshot.DatePreset,
		&snapshot.Status,
		&snapshot.SnapshotDate,
		&recordCount,
		&snapshot.ErrorMessage,
		&metadata,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if recordCount.Valid {
		count := int(recordCount.Int64)
		snapshot.RecordCount = &count
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &snapshot.Metadata); err != nil {
			return nil, fmt.Errorf("erro ao deserializar metadata: %w", err)
		}
	}

	return snapshot, nil
}

func databaseError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
