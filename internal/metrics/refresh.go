package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "portfolio"

// RefreshMetrics agrupa as métricas das atualizações de snapshot.
// Um valor nil é válido e não registra nada.
type RefreshMetrics struct {
	runs          *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	accountErrors *prometheus.CounterVec
	rowsPersisted *prometheus.CounterVec
	sinkFailures  *prometheus.CounterVec
	batches       *prometheus.CounterVec
}

func NewRefreshMetrics(reg prometheus.Registerer) *RefreshMetrics {
	if reg == nil {
		return &RefreshMetrics{}
	}

	m := &RefreshMetrics{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_runs_total",
			Help:      "Atualizações finalizadas por tipo e status.",
		}, []string{"refresh_type", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Duração das atualizações em segundos.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200},
		}, []string{"refresh_type"}),
		accountErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_account_errors_total",
			Help:      "Linhas de conta marcadas com erro.",
		}, []string{"refresh_type"}),
		rowsPersisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_rows_persisted_total",
			Help:      "Linhas de métricas gravadas no snapshot.",
		}, []string{"refresh_type"}),
		sinkFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_sink_failures_total",
			Help:      "Falhas ao exportar linhas para a planilha.",
		}, []string{"refresh_type"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refresh_batches_total",
			Help:      "Lotes de contas concluídos.",
		}, []string{"refresh_type"}),
	}

	reg.MustRegister(m.runs, m.duration, m.accountErrors, m.rowsPersisted, m.sinkFailures, m.batches)
	return m
}

func (m *RefreshMetrics) ObserveRun(refreshType, status string, duration time.Duration) {
	if m == nil || m.runs == nil {
		return
	}
	m.runs.WithLabelValues(label(refreshType), status).Inc()
	m.duration.WithLabelValues(label(refreshType)).Observe(duration.Seconds())
}

func (m *RefreshMetrics) AddAccountErrors(refreshType string, n int) {
	if m == nil || m.accountErrors == nil || n <= 0 {
		return
	}
	m.accountErrors.WithLabelValues(label(refreshType)).Add(float64(n))
}

func (m *RefreshMetrics) AddRowsPersisted(refreshType string, n int) {
	if m == nil || m.rowsPersisted == nil || n <= 0 {
		return
	}
	m.rowsPersisted.WithLabelValues(label(refreshType)).Add(float64(n))
}

func (m *RefreshMetrics) IncSinkFailure(refreshType string) {
	if m == nil || m.sinkFailures == nil {
		return
	}
	m.sinkFailures.WithLabelValues(label(refreshType)).Inc()
}

func (m *RefreshMetrics) IncBatch(refreshType string) {
	if m == nil || m.batches == nil {
		return
	}
	m.batches.WithLabelValues(label(refreshType)).Inc()
}

func label(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
