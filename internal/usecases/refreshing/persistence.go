package refreshing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/metrics"
)

// Persister grava as linhas no armazenamento de métricas e exporta para a planilha.
// A planilha é melhor esforço: falha nela não invalida a atualização.
type Persister struct {
	writer  MetricsWriter
	sink    SpreadsheetSink
	metrics *metrics.RefreshMetrics
}

func NewPersister(writer MetricsWriter, sink SpreadsheetSink, refreshMetrics *metrics.RefreshMetrics) *Persister {
	return &Persister{writer: writer, sink: sink, metrics: refreshMetrics}
}

// Persist devolve quantas linhas foram gravadas. A linha de totais vai só para a planilha.
func (p *Persister) Persist(ctx context.Context, snapshotID string, schema *Schema, target SinkTarget, rows []domain.NormalizedRow, totals domain.NormalizedRow) (int, error) {
	result, storeErr := p.writer.SaveMetrics(ctx, snapshotID, ToSnapshotMetrics(schema, snapshotID, rows))

	p.export(ctx, schema, target, rows, totals)

	if storeErr != nil {
		return 0, fmt.Errorf("erro ao salvar métricas do snapshot: %w", storeErr)
	}
	if result == nil {
		return 0, nil
	}
	if result.Error != "" {
		return result.Saved, fmt.Errorf("erro ao salvar métricas do snapshot: %s", result.Error)
	}

	p.metrics.AddRowsPersisted(schema.Name(), result.Saved)
	return result.Saved, nil
}

func (p *Persister) export(ctx context.Context, schema *Schema, target SinkTarget, rows []domain.NormalizedRow, totals domain.NormalizedRow) {
	if p.sink == nil || target.SheetID == "" {
		return
	}

	if err := p.sink.AppendRows(ctx, target.SheetID, target.Range, SheetRows(schema, rows, totals)); err != nil {
		p.metrics.IncSinkFailure(schema.Name())
		logrus.WithFields(logrus.Fields{
			"refresh_type": schema.Name(),
			"sheet_id":     target.SheetID,
			"error":        err.Error(),
		}).Warn("Falha ao exportar atualização para a planilha")
	}
}

// SheetRows monta cabeçalho, linhas e totais na ordem do schema.
func SheetRows(schema *Schema, rows []domain.NormalizedRow, totals domain.NormalizedRow) [][]any {
	out := make([][]any, 0, len(rows)+2)

	headers := schema.Headers()
	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	out = append(out, header)

	for _, row := range rows {
		out = append(out, sheetLine(row))
	}
	return append(out, sheetLine(totals))
}

func sheetLine(row domain.NormalizedRow) []any {
	line := make([]any, len(row.Values))
	for i, v := range row.Values {
		line[i] = v.Interface()
	}
	return line
}

// ToSnapshotMetrics converte as linhas normalizadas em registros de snapshot.
// Linhas de totais são descartadas.
func ToSnapshotMetrics(schema *Schema, snapshotID string, rows []domain.NormalizedRow) []*domain.SnapshotMetric {
	labelIdx, _ := schema.fieldWithRole(RoleLabel)
	groupIdx, hasGroup := schema.fieldWithRole(RoleGroup)
	spendIdx, hasSpend := schema.Index("spend")
	revenueIdx, hasRevenue := schema.Index("revenue")

	out := make([]*domain.SnapshotMetric, 0, len(rows))
	for _, row := range rows {
		if row.IsTotal {
			continue
		}

		values := make(map[string]domain.FieldValue, len(row.Values))
		for i, field := range schema.fields {
			if i < len(row.Values) {
				values[field.Name] = row.Values[i]
			}
		}

		metric := &domain.SnapshotMetric{
			SnapshotID:  snapshotID,
			AccountID:   row.AccountID,
			AccountName: row.Values[labelIdx].String(),
			Values:      values,
			IsError:     row.IsError,
			ErrorDetail: row.ErrorDetail,
		}
		if hasGroup {
			metric.Pod = row.Values[groupIdx].String()
		}
		if hasSpend {
			metric.Spend = row.Values[spendIdx].FloatPtr()
		}
		if hasRevenue {
			metric.Revenue = row.Values[revenueIdx].FloatPtr()
		}

		out = append(out, metric)
	}

	return out
}
