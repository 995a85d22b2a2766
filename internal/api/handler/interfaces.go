package handler

import (
	"context"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
)

type RefreshStarter interface {
	Start(ctx context.Context, req refreshing.Request) (*domain.Snapshot, error)
}

type SnapshotService interface {
	SetStatus(ctx context.Context, snapshotID string, status domain.SnapshotStatus, recordCount *int, errorMessage *string) (*domain.Snapshot, error)
	SaveMetrics(ctx context.Context, snapshotID string, metrics []*domain.SnapshotMetric) (*domain.SaveMetricsResult, error)
	Latest(ctx context.Context, filter domain.SnapshotFilter) (*domain.SnapshotWithMetrics, error)
	History(ctx context.Context, filter domain.SnapshotFilter, limit int) ([]*domain.Snapshot, error)
	Metrics(ctx context.Context, snapshotID string) (*domain.SnapshotWithMetrics, error)
	Diff(ctx context.Context, fromID, toID string) (*domain.SnapshotDiff, error)
}

type RefreshScheduler interface {
	TriggerManualSync(refreshType domain.RefreshType) error
	GetStatus() []map[string]any
}

type Pinger interface {
	Ping(ctx context.Context) error
}
