package refreshing

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/lock"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/metrics"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/normalizing"
)

const defaultLockTTL = 30 * time.Minute

type Dependencies struct {
	Snapshots  SnapshotManager
	Accounts   AccountLister
	Locker     lock.Locker
	Persister  *Persister
	Classifier *normalizing.Classifier
	Metrics    *metrics.RefreshMetrics
	LockTTL    time.Duration
}

// Service executa as atualizações: abre o snapshot, busca as contas, agrega e persiste.
type Service struct {
	deps         Dependencies
	integrations map[domain.RefreshType]Integration
	now          func() time.Time
}

func NewService(deps Dependencies, integrations ...Integration) *Service {
	if deps.LockTTL <= 0 {
		deps.LockTTL = defaultLockTTL
	}
	if deps.Classifier == nil {
		deps.Classifier = normalizing.DefaultClassifier()
	}

	byType := make(map[domain.RefreshType]Integration, len(integrations))
	for _, integration := range integrations {
		byType[integration.Type()] = integration
	}

	return &Service{deps: deps, integrations: byType, now: time.Now}
}

type Request struct {
	Scope    domain.SnapshotScope
	Metadata map[string]any
}

// Result é o resumo de uma execução concluída.
type Result struct {
	Snapshot  *domain.Snapshot
	Accounts  int
	Saved     int
	ErrorRows int
	Rows      []domain.NormalizedRow
	Totals    domain.NormalizedRow
}

// Run é uma atualização já registrada e com o lock do escopo em mãos.
type Run struct {
	service     *Service
	integration Integration
	snapshot    *domain.Snapshot
	release     lock.ReleaseFunc
}

func (r *Run) Snapshot() *domain.Snapshot {
	return r.snapshot
}

func (s *Service) Types() []domain.RefreshType {
	types := make([]domain.RefreshType, 0, len(s.integrations))
	for t := range s.integrations {
		types = append(types, t)
	}
	return types
}

// Begin adquire o lock do escopo e registra o snapshot do dia. A execução fica para Execute.
func (s *Service) Begin(ctx context.Context, req Request) (*Run, error) {
	integration, ok := s.integrations[req.Scope.RefreshType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRefreshType, req.Scope.RefreshType)
	}

	scope := req.Scope
	if scope.ScopeID == "" {
		scope.ScopeID = ScopeAll
	}

	release, acquired, err := s.deps.Locker.Acquire(ctx, "refresh:"+scope.Key(), s.deps.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("erro ao adquirir lock da atualização: %w", err)
	}
	if !acquired {
		return nil, ErrRefreshInProgress
	}

	snapshot, err := s.deps.Snapshots.StartRefresh(ctx, scope, req.Metadata)
	if err != nil {
		release()
		return nil, fmt.Errorf("erro ao iniciar snapshot: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id":  snapshot.ID,
		"scope":        scope.Key(),
		"refresh_type": scope.RefreshType,
	}).Info("Atualização iniciada")

	return &Run{service: s, integration: integration, snapshot: snapshot, release: release}, nil
}

// Refresh executa a atualização completa de forma síncrona.
func (s *Service) Refresh(ctx context.Context, req Request) (*Result, error) {
	run, err := s.Begin(ctx, req)
	if err != nil {
		return nil, err
	}
	return run.Execute(ctx)
}

// Start registra o snapshot e segue com a execução em segundo plano.
// O contexto da execução não herda o cancelamento de ctx.
func (s *Service) Start(ctx context.Context, req Request) (*domain.Snapshot, error) {
	run, err := s.Begin(ctx, req)
	if err != nil {
		return nil, err
	}

	go func() {
		// falhas já foram registradas no snapshot e no log
		_, _ = run.Execute(context.WithoutCancel(ctx))
	}()

	return run.Snapshot(), nil
}

// Execute roda a atualização até o fim. Qualquer falha de orquestração marca o snapshot
// como failed; falhas de conta individuais viram linhas de erro.
func (r *Run) Execute(ctx context.Context) (result *Result, err error) {
	s := r.service
	deps := s.deps
	refreshType := string(r.integration.Type())
	snapshotID := r.snapshot.ID
	started := s.now()

	defer r.release()
	defer func() {
		status := string(domain.SnapshotStatusCompleted)
		if err != nil {
			status = string(domain.SnapshotStatusFailed)
		}
		deps.Metrics.ObserveRun(refreshType, status, s.now().Sub(started))
	}()

	if _, err := deps.Snapshots.SetStatus(ctx, snapshotID, domain.SnapshotStatusProcessing, nil, nil); err != nil {
		return nil, r.fail(ctx, "processing", err)
	}

	accounts, err := deps.Accounts.ListAccounts(ctx, r.integration.Filter(r.snapshot.Scope()))
	if err != nil {
		return nil, r.fail(ctx, "accounts", err)
	}

	schema := r.integration.Schema()
	orchestrator := NewOrchestrator(r.integration.Strategy(), &logProgress{
		snapshotID:  snapshotID,
		refreshType: refreshType,
		metrics:     deps.Metrics,
	})

	raw := orchestrator.Gather(ctx, accounts,
		func(ctx context.Context, account *domain.Account) (domain.RawRow, error) {
			return r.integration.Fetch(ctx, account, r.snapshot.DatePreset)
		},
		func(account *domain.Account, err error) domain.RawRow {
			return FailureRow(schema, account.ID, r.integration.Identity(account), err)
		},
	)

	rows, totals := NewPipeline(schema, deps.Classifier).Run(raw, s.now())

	errorRows := 0
	for _, row := range rows {
		if row.IsError {
			errorRows++
		}
	}
	deps.Metrics.AddAccountErrors(refreshType, errorRows)

	saved, err := deps.Persister.Persist(ctx, snapshotID, schema, r.integration.Sink(), rows, totals)
	if err != nil {
		return nil, r.fail(ctx, "persist", err)
	}

	snapshot, err := deps.Snapshots.SetStatus(ctx, snapshotID, domain.SnapshotStatusCompleted, &saved, nil)
	if err != nil {
		return nil, r.fail(ctx, "complete", err)
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id":  snapshotID,
		"refresh_type": refreshType,
		"accounts":     len(accounts),
		"saved":        saved,
		"error_rows":   errorRows,
		"duration":     s.now().Sub(started).String(),
	}).Info("Atualização concluída")

	return &Result{
		Snapshot:  snapshot,
		Accounts:  len(accounts),
		Saved:     saved,
		ErrorRows: errorRows,
		Rows:      rows,
		Totals:    totals,
	}, nil
}

func (r *Run) fail(ctx context.Context, stage string, cause error) error {
	cause = errors.Wrapf(cause, "etapa %s", stage)
	message := cause.Error()

	// o contexto da requisição pode já ter sido cancelado
	if _, err := r.service.deps.Snapshots.SetStatus(context.WithoutCancel(ctx), r.snapshot.ID, domain.SnapshotStatusFailed, nil, &message); err != nil {
		logrus.WithFields(logrus.Fields{
			"snapshot_id": r.snapshot.ID,
			"stage":       stage,
			"error":       err.Error(),
		}).Error("Erro ao marcar snapshot como failed")
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id": r.snapshot.ID,
		"stage":       stage,
		"error":       message,
	}).Error("Atualização falhou")

	return &RefreshError{Stage: stage, SnapshotID: r.snapshot.ID, Err: cause}
}
