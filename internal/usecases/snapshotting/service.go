package snapshotting

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/pkg/utils"
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 30
)

// Service mantém o ciclo de vida dos snapshots e as consultas dos painéis.
type Service struct {
	snapshots  repository.SnapshotRepository
	metrics    repository.SnapshotMetricRepository
	maxHistory int
	now        func() time.Time
}

func NewService(snapshots repository.SnapshotRepository, metrics repository.SnapshotMetricRepository, maxHistory int) *Service {
	if maxHistory <= 0 || maxHistory > MaxHistoryLimit {
		maxHistory = MaxHistoryLimit
	}
	return &Service{
		snapshots:  snapshots,
		metrics:    metrics,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// StartRefresh cria o snapshot do dia para o escopo ou reaproveita o existente.
// Reexecuções no mesmo dia substituem as métricas anteriores em vez de acumular.
func (s *Service) StartRefresh(ctx context.Context, scope domain.SnapshotScope, metadata map[string]any) (*domain.Snapshot, error) {
	if scope.ScopeID == "" || scope.RefreshType == "" || scope.DatePreset == "" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScope, scope.Key())
	}

	if metadata == nil {
		metadata = make(map[string]any)
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id do snapshot: %w", err)
	}

	now := s.now()
	snapshot := &domain.Snapshot{
		ID:           id,
		ScopeID:      scope.ScopeID,
		RefreshType:  scope.RefreshType,
		DatePreset:   scope.DatePreset,
		Status:       domain.SnapshotStatusInProgress,
		SnapshotDate: utils.StartOfDay(now),
		Metadata:     metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, replaced, err := s.snapshots.StartForDay(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("erro ao registrar snapshot: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": saved.ID,
		"scope":       scope.Key(),
		"replaced":    replaced,
	}).Info("Snapshot do dia registrado")

	return saved, nil
}

// SetStatus aplica a transição; a mensagem de erro também vai para metadata["error"].
func (s *Service) SetStatus(ctx context.Context, snapshotID string, status domain.SnapshotStatus, recordCount *int, errorMessage *string) (*domain.Snapshot, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	current, err := s.snapshots.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshot: %w", err)
	}
	if current == nil {
		return nil, ErrSnapshotNotFound
	}

	if !current.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}

	update := &domain.SnapshotStatusUpdate{
		SnapshotID:   snapshotID,
		Status:       status,
		RecordCount:  recordCount,
		ErrorMessage: errorMessage,
		UpdatedAt:    s.now(),
	}

	if errorMessage != nil {
		metadata := maps.Clone(current.Metadata)
		if metadata == nil {
			metadata = make(map[string]any)
		}
		metadata["error"] = *errorMessage
		update.Metadata = metadata
	}

	updated, err := s.snapshots.UpdateStatus(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("erro ao atualizar status do snapshot: %w", err)
	}
	if updated == nil {
		return nil, ErrSnapshotNotFound
	}

	return updated, nil
}

// SaveMetrics grava as linhas do snapshot. A linha de totais nunca é persistida.
// Falha de gravação volta no campo Error do resultado.
func (s *Service) SaveMetrics(ctx context.Context, snapshotID string, metrics []*domain.SnapshotMetric) (*domain.SaveMetricsResult, error) {
	snapshot, err := s.snapshots.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}
	if snapshot.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotClosed, snapshot.Status)
	}

	rows := make([]*domain.SnapshotMetric, 0, len(metrics))
	for _, metric := range metrics {
		// a linha de totais é derivada e nunca é persistida
		if metric == nil || metric.IsTotal {
			continue
		}
		metric.SnapshotID = snapshotID
		rows = append(rows, metric)
	}

	saved, err := s.metrics.SaveBatch(ctx, rows)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"snapshot_id": snapshotID,
			"rows":        len(rows),
			"error":       err.Error(),
		}).Error("Erro ao salvar métricas do snapshot")
		return &domain.SaveMetricsResult{Error: err.Error()}, nil
	}

	return &domain.SaveMetricsResult{Saved: saved}, nil
}

// Latest devolve o último snapshot concluído do filtro com suas métricas.
func (s *Service) Latest(ctx context.Context, filter domain.SnapshotFilter) (*domain.SnapshotWithMetrics, error) {
	filter.Status = domain.SnapshotStatusCompleted

	snapshot, err := s.snapshots.GetLatest(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar último snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}

	return s.withMetrics(ctx, snapshot)
}

// History lista os snapshots mais recentes; limit fora da faixa é ajustado.
func (s *Service) History(ctx context.Context, filter domain.SnapshotFilter, limit int) ([]*domain.Snapshot, error) {
	switch {
	case limit <= 0:
		limit = min(DefaultHistoryLimit, s.maxHistory)
	case limit > s.maxHistory:
		limit = s.maxHistory
	}

	snapshots, err := s.snapshots.ListHistory(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar histórico de snapshots: %w", err)
	}

	return snapshots, nil
}

func (s *Service) Metrics(ctx context.Context, snapshotID string) (*domain.SnapshotWithMetrics, error) {
	snapshot, err := s.snapshots.GetByID(ctx, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, ErrSnapshotNotFound
	}

	return s.withMetrics(ctx, snapshot)
}

// Diff compara dois snapshots conta a conta.
func (s *Service) Diff(ctx context.Context, fromID, toID string) (*domain.SnapshotDiff, error) {
	from, err := s.Metrics(ctx, fromID)
	if err != nil {
		return nil, fmt.Errorf("snapshot de origem %s: %w", fromID, err)
	}

	to, err := s.Metrics(ctx, toID)
	if err != nil {
		return nil, fmt.Errorf("snapshot de destino %s: %w", toID, err)
	}

	return &domain.SnapshotDiff{
		From:     from.Snapshot,
		To:       to.Snapshot,
		Accounts: DiffMetrics(from.Metrics, to.Metrics),
	}, nil
}

func (s *Service) withMetrics(ctx context.Context, snapshot *domain.Snapshot) (*domain.SnapshotWithMetrics, error) {
	metrics, err := s.metrics.ListBySnapshotID(ctx, snapshot.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar métricas do snapshot: %w", err)
	}

	return &domain.SnapshotWithMetrics{Snapshot: snapshot, Metrics: metrics}, nil
}
