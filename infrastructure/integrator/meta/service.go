package meta

import (
	"context"

	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/metaclient"
)

type Integrator interface {
	GetAccountMetrics(ctx context.Context, accountID, datePreset string) (*metadomain.AccountMetrics, error)
}

type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{Client: client}
}

func (s *MetaIntegrator) GetAccountMetrics(ctx context.Context, accountID, datePreset string) (*metadomain.AccountMetrics, error) {
	resp, err := s.Client.GetAdAccountInsightsByID(ctx, accountID, datePreset)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":  accountID,
			"date_preset": datePreset,
			"error":       err.Error(),
		}).Debug("insights: failed to get ad account insights from API")
		return nil, err
	}

	return FactoryAccountMetrics(resp), nil
}

// FactoryAccountMetrics extrai compras, receita e ROAS das listas de ações.
// Ausência de ação de compra significa zero compras, não falha.
func FactoryAccountMetrics(insight *metadomain.AdAccountInsight) *metadomain.AccountMetrics {
	purchases, ok := metadomain.FindAction(insight.Actions, metadomain.PurchaseActionTypes...)
	if !ok {
		purchases = "0"
	}

	revenue, ok := metadomain.FindAction(insight.ActionValues, metadomain.PurchaseActionTypes...)
	if !ok {
		revenue = "0"
	}

	roas, ok := metadomain.FindAction(insight.PurchaseRoas, metadomain.PurchaseActionTypes...)
	if !ok {
		roas = "0"
	}

	return &metadomain.AccountMetrics{
		AccountID:   insight.AccountID,
		Name:        insight.Name,
		Spend:       orZero(insight.Spend),
		Revenue:     revenue,
		Purchases:   purchases,
		Roas:        roas,
		CPC:         orZero(insight.CPC),
		CTR:         orZero(insight.CTR),
		Clicks:      orZero(insight.Clicks),
		Impressions: orZero(insight.Impressions),
	}
}

func orZero(value string) string {
	if value == "" {
		return "0"
	}
	return value
}
