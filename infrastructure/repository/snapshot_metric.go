package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/database/postgres"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

// limite de parâmetros do postgres é 65535; 10 colunas por linha
const metricsInsertChunk = 500

const snapshotMetricColumns = "id, snapshot_id, account_id, account_name, pod, spend, revenue, metric_values, is_error, error_detail, created_at"

type SnapshotMetricRepository interface {
	SaveBatch(ctx context.Context, metrics []*domain.SnapshotMetric) (int, error)
	ListBySnapshotID(ctx context.Context, snapshotID string) ([]*domain.SnapshotMetric, error)
}

type snapshotMetricRepository struct {
	conn *postgres.Connection
	now  func() time.Time
}

func NewSnapshotMetricRepository(conn *postgres.Connection) SnapshotMetricRepository {
	return &snapshotMetricRepository{conn: conn, now: time.Now}
}

// SaveBatch grava todas as linhas numa única transação.
func (r *snapshotMetricRepository) SaveBatch(ctx context.Context, metrics []*domain.SnapshotMetric) (int, error) {
	if len(metrics) == 0 {
		return 0, nil
	}

	createdAt := r.now()
	saved := 0

	err := r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for start := 0; start < len(metrics); start += metricsInsertChunk {
			end := min(start+metricsInsertChunk, len(metrics))

			query := squirrel.
				Insert(snapshotMetricsTable).
				Columns("snapshot_id", "account_id", "account_name", "pod", "spend", "revenue", "metric_values", "is_error", "error_detail", "created_at").
				PlaceholderFormat(squirrel.Dollar)

			for _, metric := range metrics[start:end] {
				values, err := json.Marshal(metric.Values)
				if err != nil {
					return fmt.Errorf("erro ao serializar valores da conta %s: %w", metric.AccountID, err)
				}
				var errorDetail any
				if metric.ErrorDetail != nil {
					detail, err := json.Marshal(metric.ErrorDetail)
					if err != nil {
						return fmt.Errorf("erro ao serializar erros da conta %s: %w", metric.AccountID, err)
					}
					errorDetail = detail
				}

				query = query.Values(
					metric.SnapshotID,
					metric.AccountID,
					metric.AccountName,
					metric.Pod,
					metric.Spend,
					metric.Revenue,
					values,
					metric.IsError,
					errorDetail,
					createdAt,
				)
			}

			sqlQuery, args, err := query.ToSql()
			if err != nil {
				return fmt.Errorf("failed to build query: %w", err)
			}

			result, err := q.ExecContext(ctx, sqlQuery, args...)
			if err != nil {
				return databaseError(err)
			}

			affected, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("error getting rows affected: %w", err)
			}
			saved += int(affected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return saved, nil
}

func (r *snapshotMetricRepository) ListBySnapshotID(ctx context.Context, snapshotID string) ([]*domain.SnapshotMetric, error) {
	query, args, err := squirrel.
		Select(snapshotMetricColumns).
		From(snapshotMetricsTable).
		Where(squirrel.Eq{"snapshot_id": snapshotID}).
		OrderBy("revenue DESC NULLS LAST", "spend DESC NULLS LAST", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar métricas do snapshot: %w", err)
	}
	defer rows.Close()

	metrics := make([]*domain.SnapshotMetric, 0)
	for rows.Next() {
		metric := &domain.SnapshotMetric{}
		var values, errorDetail []byte

		if err := rows.Scan(
			&metric.ID,
			&metric.SnapshotID,
			&metric.AccountID,
			&metric.AccountName,
			&metric.Pod,
			&metric.Spend,
			&metric.Revenue,
			&values,
			&metric.IsError,
			&errorDetail,
			&metric.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("erro ao deserializar métrica: %w", err)
		}

		if len(values) > 0 {
			if err := json.Unmarshal(values, &metric.Values); err != nil {
				return nil, fmt.Errorf("erro ao deserializar valores: %w", err)
			}
		}
		if len(errorDetail) > 0 {
			metric.ErrorDetail = &domain.ErrorDetail{}
			if err := json.Unmarshal(errorDetail, metric.ErrorDetail); err != nil {
				return nil, fmt.Errorf("erro ao deserializar erros: %w", err)
			}
		}

		metrics = append(metrics, metric)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return metrics, nil
}
