package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/portfolio-refresh-api/internal/api/handler/mocks"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/scheduler"
	"github.com/vfg2006/portfolio-refresh-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func TestRunCronJob(t *testing.T) {
	tests := []struct {
		name       string
		cronType   string
		err        error
		wantStatus int
	}{
		{name: "dispara o agendamento", cronType: "pod_sheet", wantStatus: http.StatusAccepted},
		{name: "já em execução", cronType: "pod_sheet", err: scheduler.ErrJobRunning, wantStatus: http.StatusConflict},
		{name: "tipo desconhecido", cronType: "crm", err: scheduler.ErrUnknownJob, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sched := mocks.NewMockRefreshScheduler(ctrl)
			sched.EXPECT().TriggerManualSync(domain.RefreshType(tt.cronType)).Return(tt.err)

			rec := serve(t, CronJobs(sched), http.MethodPost, "/v1/cron/"+tt.cronType+"/run", "", middleware.RoleAdmin)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestGetCronStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockRefreshScheduler(ctrl)
	sched.EXPECT().GetStatus().Return([]map[string]any{
		{"refresh_type": "ad_insights", "running": false},
		{"refresh_type": "pod_sheet", "running": true},
	})

	rec := serve(t, CronJobs(sched), http.MethodGet, "/v1/cron", "", middleware.RoleSupervisor)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResponse(t, rec)["jobs"], 2)
}

func TestGetCronStatus_ClienteSemPermissao(t *testing.T) {
	ctrl := gomock.NewController(t)
	sched := mocks.NewMockRefreshScheduler(ctrl)

	rec := serve(t, CronJobs(sched), http.MethodGet, "/v1/cron", "", middleware.RoleClient)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHealthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := mocks.NewMockPinger(ctrl)
	db.EXPECT().Ping(gomock.Any()).Return(nil)
	db.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	rec := serve(t, Healthcheck(db), http.MethodGet, "/healthcheck", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeResponse(t, rec)["status"])

	rec = serve(t, Healthcheck(db), http.MethodGet, "/healthcheck", "", 0)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
