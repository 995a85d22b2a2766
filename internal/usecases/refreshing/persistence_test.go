package refreshing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing/mocks"
)

func scenarioRows() ([]domain.NormalizedRow, domain.NormalizedRow) {
	return NewPipeline(testSchema, nil).Run([]domain.RawRow{
		rawRow("A", "Conta A", map[string]any{"spend": "1,000", "revenue": "3,000"}),
		rawRow("B", "Conta B", map[string]any{"spend": "Missing Permissions", "revenue": "Missing Permissions"}),
	}, fixedNow)
}

func TestPersister_Persist(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockMetricsWriter(ctrl)
	sink := mocks.NewMockSpreadsheetSink(ctrl)
	target := SinkTarget{SheetID: "sheet-1", Range: "Dados!A1"}

	rows, totals := scenarioRows()

	writer.EXPECT().
		SaveMetrics(gomock.Any(), "snap-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, metrics []*domain.SnapshotMetric) (*domain.SaveMetricsResult, error) {
			require.Len(t, metrics, 2)
			for _, m := range metrics {
				assert.NotEqual(t, domain.TotalsLabel, m.AccountName)
			}
			assert.Equal(t, "Conta A", metrics[0].AccountName)
			assert.Equal(t, 1000.0, *metrics[0].Spend)
			assert.Equal(t, "pod-1", metrics[0].Pod)
			assert.True(t, metrics[1].IsError)
			assert.Nil(t, metrics[1].Spend)
			return &domain.SaveMetricsResult{Saved: len(metrics)}, nil
		})

	sink.EXPECT().
		AppendRows(gomock.Any(), "sheet-1", "Dados!A1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, values [][]any) error {
			require.Len(t, values, 4)
			assert.Equal(t, "account_name", values[0][0])
			assert.Equal(t, domain.TotalsLabel, values[3][0])
			return nil
		})

	saved, err := NewPersister(writer, sink, nil).Persist(context.Background(), "snap-1", testSchema, target, rows, totals)

	require.NoError(t, err)
	assert.Equal(t, 2, saved)
}

func TestPersister_Persist_FalhaNaPlanilhaNaoInterrompe(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockMetricsWriter(ctrl)
	sink := mocks.NewMockSpreadsheetSink(ctrl)

	rows, totals := scenarioRows()

	writer.EXPECT().SaveMetrics(gomock.Any(), "snap-1", gomock.Any()).Return(&domain.SaveMetricsResult{Saved: 2}, nil)
	sink.EXPECT().AppendRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	saved, err := NewPersister(writer, sink, nil).Persist(context.Background(), "snap-1", testSchema, SinkTarget{SheetID: "s"}, rows, totals)

	require.NoError(t, err)
	assert.Equal(t, 2, saved)
}

func TestPersister_Persist_FalhaNoArmazenamentoAindaExporta(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockMetricsWriter(ctrl)
	sink := mocks.NewMockSpreadsheetSink(ctrl)

	rows, totals := scenarioRows()

	writer.EXPECT().SaveMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	sink.EXPECT().AppendRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := NewPersister(writer, sink, nil).Persist(context.Background(), "snap-1", testSchema, SinkTarget{SheetID: "s"}, rows, totals)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestPersister_Persist_SemPlanilhaConfigurada(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockMetricsWriter(ctrl)
	sink := mocks.NewMockSpreadsheetSink(ctrl)

	rows, totals := scenarioRows()
	writer.EXPECT().SaveMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.SaveMetricsResult{Saved: 2}, nil)

	_, err := NewPersister(writer, sink, nil).Persist(context.Background(), "snap-1", testSchema, SinkTarget{}, rows, totals)

	require.NoError(t, err)
}

func TestPersister_Persist_ErroInformadoNoResultado(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockMetricsWriter(ctrl)

	rows, totals := scenarioRows()
	writer.EXPECT().SaveMetrics(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.SaveMetricsResult{Error: "snapshot já finalizado"}, nil)

	_, err := NewPersister(writer, nil, nil).Persist(context.Background(), "snap-1", testSchema, SinkTarget{}, rows, totals)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot já finalizado")
}
