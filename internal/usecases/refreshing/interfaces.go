package refreshing

import (
	"context"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

// SnapshotManager controla o ciclo de vida do snapshot de uma atualização.
type SnapshotManager interface {
	StartRefresh(ctx context.Context, scope domain.SnapshotScope, metadata map[string]any) (*domain.Snapshot, error)
	SetStatus(ctx context.Context, snapshotID string, status domain.SnapshotStatus, recordCount *int, errorMessage *string) (*domain.Snapshot, error)
}

// MetricsWriter grava as linhas no armazenamento de métricas.
type MetricsWriter interface {
	SaveMetrics(ctx context.Context, snapshotID string, metrics []*domain.SnapshotMetric) (*domain.SaveMetricsResult, error)
}

type AccountLister interface {
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
}

// SpreadsheetSink recebe a exportação completa, com cabeçalho e linha de totais.
type SpreadsheetSink interface {
	AppendRows(ctx context.Context, sheetID, writeRange string, rows [][]any) error
}
