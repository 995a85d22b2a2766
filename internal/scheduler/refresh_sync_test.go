package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
)

type fakeRefresher struct {
	mu       sync.Mutex
	requests []refreshing.Request
	release  chan struct{}
	err      error
}

func (f *fakeRefresher) Refresh(_ context.Context, req refreshing.Request) (*refreshing.Result, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if f.release != nil {
		<-f.release
	}
	if f.err != nil {
		return nil, f.err
	}
	return &refreshing.Result{Snapshot: &domain.Snapshot{ID: "snap-1"}}, nil
}

func (f *fakeRefresher) calls() []refreshing.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]refreshing.Request(nil), f.requests...)
}

func testConfig() *config.Config {
	return &config.Config{
		PodSheetRefresh: config.PodSheetRefresh{
			CronSchedule: "0 6 * * *",
			ScopeID:      "all",
			DatePreset:   "last_7d",
			Enabled:      true,
		},
	}
}

func statusFor(t *testing.T, s *RefreshSyncService, refreshType string) map[string]any {
	t.Helper()
	for _, st := range s.GetStatus() {
		if st["refresh_type"] == refreshType {
			return st
		}
	}
	t.Fatalf("status de %s não encontrado", refreshType)
	return nil
}

func TestRefreshSyncService_TriggerManualSync(t *testing.T) {
	refresher := &fakeRefresher{}
	service := NewRefreshSyncService(refresher, testConfig())

	require.NoError(t, service.TriggerManualSync(domain.RefreshTypePodSheet))

	assert.Eventually(t, func() bool {
		return statusFor(t, service, "pod_sheet")["last_snapshot_id"] == "snap-1"
	}, time.Second, 5*time.Millisecond)

	calls := refresher.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, domain.SnapshotScope{ScopeID: "all", RefreshType: domain.RefreshTypePodSheet, DatePreset: "last_7d"}, calls[0].Scope)
	assert.Equal(t, "manual", calls[0].Metadata["trigger"])
}

func TestRefreshSyncService_TriggerManualSync_EmAndamento(t *testing.T) {
	refresher := &fakeRefresher{release: make(chan struct{})}
	service := NewRefreshSyncService(refresher, testConfig())

	require.NoError(t, service.TriggerManualSync(domain.RefreshTypePodSheet))
	assert.Eventually(t, func() bool {
		return statusFor(t, service, "pod_sheet")["running"] == true
	}, time.Second, 5*time.Millisecond)

	assert.ErrorIs(t, service.TriggerManualSync(domain.RefreshTypePodSheet), ErrJobRunning)

	close(refresher.release)
	assert.Eventually(t, func() bool {
		return statusFor(t, service, "pod_sheet")["running"] == false
	}, time.Second, 5*time.Millisecond)
}

func TestRefreshSyncService_TriggerManualSync_TipoDesconhecido(t *testing.T) {
	service := NewRefreshSyncService(&fakeRefresher{}, testConfig())

	assert.ErrorIs(t, service.TriggerManualSync("crm"), ErrUnknownJob)
}

func TestRefreshSyncService_RegistraErroDaUltimaExecucao(t *testing.T) {
	refresher := &fakeRefresher{err: &refreshing.RefreshError{Stage: "persist", SnapshotID: "snap-9", Err: errors.New("db down")}}
	service := NewRefreshSyncService(refresher, testConfig())

	require.NoError(t, service.TriggerManualSync(domain.RefreshTypePodSheet))

	assert.Eventually(t, func() bool {
		st := statusFor(t, service, "pod_sheet")
		return st["last_snapshot_id"] == "snap-9" && st["last_error"] != ""
	}, time.Second, 5*time.Millisecond)
}

func TestRefreshSyncService_Start_CronInvalido(t *testing.T) {
	cfg := testConfig()
	cfg.PodSheetRefresh.CronSchedule = "todo dia"
	service := NewRefreshSyncService(&fakeRefresher{}, cfg)

	err := service.Start(context.Background())

	assert.Error(t, err)
}

func TestRefreshSyncService_Start_TudoDesabilitado(t *testing.T) {
	cfg := testConfig()
	cfg.PodSheetRefresh.Enabled = false
	service := NewRefreshSyncService(&fakeRefresher{}, cfg)

	assert.NoError(t, service.Start(context.Background()))
	assert.False(t, statusFor(t, service, "pod_sheet")["enabled"].(bool))
}
