package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
	"github.com/vfg2006/portfolio-refresh-api/pkg/middleware"
)

type RefreshRequest struct {
	RefreshType string         `json:"refresh_type" validate:"required,oneof=ad_insights finance_batch pod_sheet"`
	ScopeID     string         `json:"scope_id" validate:"omitempty,max=100"`
	DatePreset  string         `json:"date_preset" validate:"required,oneof=today yesterday last_7d last_14d last_30d this_month last_month"`
	Metadata    map[string]any `json:"metadata"`
}

type RefreshResponse struct {
	SnapshotID  string                `json:"snapshot_id"`
	Status      domain.SnapshotStatus `json:"status"`
	ScopeID     string                `json:"scope_id"`
	RefreshType domain.RefreshType    `json:"refresh_type"`
	DatePreset  string                `json:"date_preset"`
}

// StartRefresh registra o snapshot do dia e devolve 202; o processamento segue em segundo plano.
func StartRefresh(service RefreshStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		if !decodeBody(w, r, &req) {
			return
		}

		metadata := req.Metadata
		if metadata == nil {
			metadata = make(map[string]any)
		}
		metadata["trigger"] = "api"
		if claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims); ok {
			metadata["requested_by"] = claims.UserID
		}

		snapshot, err := service.Start(r.Context(), refreshing.Request{
			Scope: domain.SnapshotScope{
				ScopeID:     req.ScopeID,
				RefreshType: domain.RefreshType(req.RefreshType),
				DatePreset:  req.DatePreset,
			},
			Metadata: metadata,
		})
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"refresh_type": req.RefreshType,
				"scope":        req.ScopeID,
				"error":        err.Error(),
			}).Warn("Atualização não iniciada")
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusAccepted, RefreshResponse{
			SnapshotID:  snapshot.ID,
			Status:      snapshot.Status,
			ScopeID:     snapshot.ScopeID,
			RefreshType: snapshot.RefreshType,
			DatePreset:  snapshot.DatePreset,
		})
	}
}
