package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
)

var (
	ErrUnknownJob = errors.New("agendamento de atualização não encontrado")
	ErrJobRunning = errors.New("atualização já em andamento")
)

// Refresher executa uma atualização completa.
type Refresher interface {
	Refresh(ctx context.Context, req refreshing.Request) (*refreshing.Result, error)
}

type refreshJob struct {
	refreshType domain.RefreshType
	config      config.RefreshJob

	mu              sync.Mutex
	running         bool
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastSnapshotID  string
	lastError       string
}

// RefreshSyncService agenda as atualizações por tipo e permite disparo manual.
type RefreshSyncService struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	jobs      map[domain.RefreshType]*refreshJob
	timeout   time.Duration

	ctxMu sync.RWMutex
	ctx   context.Context
}

func NewRefreshSyncService(refresher Refresher, appConfig *config.Config) *RefreshSyncService {
	jobs := make(map[domain.RefreshType]*refreshJob)
	for name, jobConfig := range appConfig.RefreshJobs() {
		refreshType := domain.RefreshType(name)
		jobs[refreshType] = &refreshJob{refreshType: refreshType, config: jobConfig}

		logrus.WithFields(logrus.Fields{
			"refresh_type": name,
			"cron":         jobConfig.CronSchedule,
			"scope":        jobConfig.ScopeID,
			"date_preset":  jobConfig.DatePreset,
			"enabled":      jobConfig.Enabled,
		}).Info("Configuração do agendador de atualização carregada")
	}

	return &RefreshSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		refresher: refresher,
		jobs:      jobs,
		timeout:   appConfig.Refresh.LockTTL,
		ctx:       context.Background(),
	}
}

// Start agenda os tipos habilitados e para o agendador quando ctx é cancelado.
func (s *RefreshSyncService) Start(ctx context.Context) error {
	s.ctxMu.Lock()
	s.ctx = ctx
	s.ctxMu.Unlock()

	scheduled := 0
	for _, job := range s.jobs {
		if !job.config.Enabled {
			logrus.WithField("refresh_type", job.refreshType).Info("Atualização agendada desabilitada por configuração")
			continue
		}

		refreshType := job.refreshType
		if _, err := s.scheduler.Cron(job.config.CronSchedule).Do(func() {
			s.run(refreshType, "cron")
		}); err != nil {
			return fmt.Errorf("erro ao agendar atualização %s: %w", refreshType, err)
		}
		scheduled++
	}

	if scheduled == 0 {
		return nil
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de atualizações")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualSync dispara a atualização em segundo plano.
func (s *RefreshSyncService) TriggerManualSync(refreshType domain.RefreshType) error {
	job, ok := s.jobs[refreshType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownJob, refreshType)
	}

	job.mu.Lock()
	running := job.running
	job.mu.Unlock()
	if running {
		return ErrJobRunning
	}

	logrus.WithField("refresh_type", refreshType).Info("Iniciando atualização manual")
	go s.run(refreshType, "manual")
	return nil
}

func (s *RefreshSyncService) run(refreshType domain.RefreshType, trigger string) {
	job := s.jobs[refreshType]

	job.mu.Lock()
	if job.running {
		job.mu.Unlock()
		logrus.WithField("refresh_type", refreshType).Info("Atualização já em andamento, ignorando")
		return
	}
	job.running = true
	job.lastStartedAt = time.Now()
	job.mu.Unlock()

	s.ctxMu.RLock()
	ctx := s.ctx
	s.ctxMu.RUnlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.refresher.Refresh(ctx, refreshing.Request{
		Scope: domain.SnapshotScope{
			ScopeID:     job.config.ScopeID,
			RefreshType: refreshType,
			DatePreset:  job.config.DatePreset,
		},
		Metadata: map[string]any{"trigger": trigger},
	})

	job.mu.Lock()
	defer job.mu.Unlock()

	job.running = false
	job.lastCompletedAt = time.Now()
	job.lastError = ""

	var refreshErr *refreshing.RefreshError
	switch {
	case err == nil:
		job.lastSnapshotID = result.Snapshot.ID
	case errors.As(err, &refreshErr):
		job.lastSnapshotID = refreshErr.SnapshotID
		job.lastError = err.Error()
	default:
		job.lastError = err.Error()
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"refresh_type": refreshType,
			"trigger":      trigger,
			"error":        err.Error(),
		}).Error("Erro na atualização agendada")
	}
}

// GetStatus retorna o status atual de cada agendamento
func (s *RefreshSyncService) GetStatus() []map[string]any {
	types := make([]string, 0, len(s.jobs))
	for t := range s.jobs {
		types = append(types, string(t))
	}
	sort.Strings(types)

	status := make([]map[string]any, 0, len(types))
	for _, t := range types {
		job := s.jobs[domain.RefreshType(t)]
		job.mu.Lock()
		status = append(status, map[string]any{
			"refresh_type":      t,
			"enabled":           job.config.Enabled,
			"cron":              job.config.CronSchedule,
			"scope_id":          job.config.ScopeID,
			"date_preset":       job.config.DatePreset,
			"running":           job.running,
			"last_started_at":   job.lastStartedAt,
			"last_completed_at": job.lastCompletedAt,
			"last_snapshot_id":  job.lastSnapshotID,
			"last_error":        job.lastError,
		})
		job.mu.Unlock()
	}

	return status
}
