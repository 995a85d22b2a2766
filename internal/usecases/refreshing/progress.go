package refreshing

import (
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/portfolio-refresh-api/internal/metrics"
)

type logProgress struct {
	snapshotID  string
	refreshType string
	metrics     *metrics.RefreshMetrics
}

func (p *logProgress) BatchDone(batch, totalBatches, accounts int) {
	p.metrics.IncBatch(p.refreshType)
	logrus.WithFields(logrus.Fields{
		"snapshot_id":  p.snapshotID,
		"refresh_type": p.refreshType,
		"batch":        batch,
		"total":        totalBatches,
		"accounts":     accounts,
	}).Info("Lote de contas processado")
}
