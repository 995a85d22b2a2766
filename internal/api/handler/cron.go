package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/pkg/apiErrors"
)

// RunCronJob dispara manualmente o agendamento de um tipo de atualização
func RunCronJob(scheduler RefreshScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		if err := scheduler.TriggerManualSync(domain.RefreshType(cronType)); err != nil {
			writeServiceError(w, err)
			return
		}

		logrus.WithField("refresh_type", cronType).Info("Cron job disparada manualmente")
		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(scheduler RefreshScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"jobs": scheduler.GetStatus(),
		})
	}
}
