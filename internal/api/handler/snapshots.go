package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
	"github.com/vfg2006/portfolio-refresh-api/pkg/apiErrors"
)

type SetStatusRequest struct {
	Status       string  `json:"status" validate:"required,oneof=pending in_progress processing completed failed"`
	RecordCount  *int    `json:"record_count" validate:"omitempty,gte=0"`
	ErrorMessage *string `json:"error_message" validate:"omitempty,max=2000"`
}

type MetricRowRequest struct {
	AccountID   string                       `json:"account_id" validate:"required_unless=IsTotal true,max=100"`
	AccountName string                       `json:"account_name" validate:"required,max=255"`
	Pod         string                       `json:"pod" validate:"max=100"`
	Spend       *float64                     `json:"spend"`
	Revenue     *float64                     `json:"revenue"`
	Values      map[string]domain.FieldValue `json:"values"`
	IsError     bool                         `json:"is_error"`
	ErrorDetail *domain.ErrorDetail          `json:"error_detail"`
	IsTotal     bool                         `json:"is_total"`
}

type SaveMetricsRequest struct {
	Rows []*MetricRowRequest `json:"rows" validate:"required,min=1,dive,required"`
}

func snapshotID(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func snapshotFilter(r *http.Request) domain.SnapshotFilter {
	query := r.URL.Query()
	return domain.SnapshotFilter{
		ScopeID:     query.Get("scope_id"),
		RefreshType: domain.RefreshType(query.Get("refresh_type")),
		DatePreset:  query.Get("date_preset"),
	}
}

func SetSnapshotStatus(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetStatusRequest
		if !decodeBody(w, r, &req) {
			return
		}

		snapshot, err := service.SetStatus(r.Context(), snapshotID(r), domain.SnapshotStatus(req.Status), req.RecordCount, req.ErrorMessage)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, snapshot)
	}
}

// SaveSnapshotMetrics responde 200 mesmo quando a gravação falha; o erro vem no corpo.
func SaveSnapshotMetrics(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SaveMetricsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		rows := make([]*domain.SnapshotMetric, 0, len(req.Rows))
		for _, row := range req.Rows {
			rows = append(rows, &domain.SnapshotMetric{
				AccountID:   row.AccountID,
				AccountName: row.AccountName,
				Pod:         row.Pod,
				Spend:       row.Spend,
				Revenue:     row.Revenue,
				Values:      row.Values,
				IsError:     row.IsError,
				ErrorDetail: row.ErrorDetail,
				IsTotal:     row.IsTotal,
			})
		}

		result, err := service.SaveMetrics(r.Context(), snapshotID(r), rows)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func GetSnapshot(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.Metrics(r.Context(), snapshotID(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result.Snapshot)
	}
}

func GetSnapshotMetrics(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.Metrics(r.Context(), snapshotID(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// GetLatestSnapshot exige refresh_type; sem scope_id usa o escopo global.
func GetLatestSnapshot(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := snapshotFilter(r)
		if filter.RefreshType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "refresh_type é obrigatório", nil)
			return
		}
		if filter.ScopeID == "" {
			filter.ScopeID = refreshing.ScopeAll
		}

		result, err := service.Latest(r.Context(), filter)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

func ListSnapshotHistory(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		snapshots, err := service.History(r.Context(), snapshotFilter(r), limit)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if snapshots == nil {
			snapshots = []*domain.Snapshot{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"snapshots": snapshots,
			"count":     len(snapshots),
		})
	}
}

func DiffSnapshots(service SnapshotService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, to := r.URL.Query().Get("from"), r.URL.Query().Get("to")
		if from == "" || to == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "from e to são obrigatórios", nil)
			return
		}

		diff, err := service.Diff(r.Context(), from, to)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, diff)
	}
}
