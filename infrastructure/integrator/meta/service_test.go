package meta

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	metadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/domain"
)

type fakeClient struct {
	insight *metadomain.AdAccountInsight
	err     error
}

func (f *fakeClient) GetAdAccountInsightsByID(_ context.Context, _, _ string) (*metadomain.AdAccountInsight, error) {
	return f.insight, f.err
}

func TestFactoryAccountMetrics(t *testing.T) {
	tests := []struct {
		name    string
		insight *metadomain.AdAccountInsight
		want    *metadomain.AccountMetrics
	}{
		{
			name: "Compras pelo tipo omni_purchase",
			insight: &metadomain.AdAccountInsight{
				AccountID:    "1",
				Name:         "Loja A",
				Spend:        "1,000.00",
				Clicks:       "300",
				CPC:          "3.33",
				CTR:          "1.2",
				Impressions:  "25000",
				Actions:      []metadomain.Action{{ActionType: "link_click", Value: "300"}, {ActionType: "omni_purchase", Value: "10"}},
				ActionValues: []metadomain.Action{{ActionType: "omni_purchase", Value: "3000"}},
				PurchaseRoas: []metadomain.Action{{ActionType: "omni_purchase", Value: "3"}},
			},
			want: &metadomain.AccountMetrics{
				AccountID: "1", Name: "Loja A", Spend: "1,000.00", Revenue: "3000", Purchases: "10",
				Roas: "3", CPC: "3.33", CTR: "1.2", Clicks: "300", Impressions: "25000",
			},
		},
		{
			name: "Sem ações de compra vira zero",
			insight: &metadomain.AdAccountInsight{
				AccountID: "2",
				Name:      "Loja B",
				Spend:     "50",
			},
			want: &metadomain.AccountMetrics{
				AccountID: "2", Name: "Loja B", Spend: "50", Revenue: "0", Purchases: "0",
				Roas: "0", CPC: "0", CTR: "0", Clicks: "0", Impressions: "0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FactoryAccountMetrics(tt.insight))
		})
	}
}

func TestMetaIntegrator_GetAccountMetrics(t *testing.T) {
	t.Run("Sucesso", func(t *testing.T) {
		s := New(&fakeClient{insight: &metadomain.AdAccountInsight{AccountID: "1", Spend: "10"}})
		metrics, err := s.GetAccountMetrics(context.Background(), "1", "yesterday")
		require.NoError(t, err)
		assert.Equal(t, "10", metrics.Spend)
	})

	t.Run("Erro repassado", func(t *testing.T) {
		s := New(&fakeClient{err: errors.New("timeout")})
		_, err := s.GetAccountMetrics(context.Background(), "1", "yesterday")
		assert.EqualError(t, err, "timeout")
	})
}
