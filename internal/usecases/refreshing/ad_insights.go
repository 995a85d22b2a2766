package refreshing

import (
	"context"
	"maps"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

var adInsightsSchema = NewSchema(string(domain.RefreshTypeAdInsights)).
	Label("account_name").
	AccountID("account_id").
	Group("pod").
	Additive("spend", "revenue", "purchases").
	Rate("roas", "cpc", "ctr").
	Status("monitored").
	SortBy("revenue", "spend").
	MustBuild()

// AdInsightsIntegration faz uma chamada de insights por conta de anúncio.
type AdInsightsIntegration struct {
	meta     meta.Integrator
	strategy Strategy
	sink     SinkTarget
}

func NewAdInsightsIntegration(metaIntegrator meta.Integrator, concurrency int, sink SinkTarget) *AdInsightsIntegration {
	return &AdInsightsIntegration{
		meta:     metaIntegrator,
		strategy: Strategy{Concurrency: concurrency},
		sink:     sink,
	}
}

func (i *AdInsightsIntegration) Type() domain.RefreshType { return domain.RefreshTypeAdInsights }

func (i *AdInsightsIntegration) Schema() *Schema { return adInsightsSchema }

func (i *AdInsightsIntegration) Strategy() Strategy { return i.strategy }

func (i *AdInsightsIntegration) Sink() SinkTarget { return i.sink }

func (i *AdInsightsIntegration) Filter(scope domain.SnapshotScope) domain.AccountFilter {
	filter := scopeFilter(scope)
	filter.Origin = "meta"
	return filter
}

func (i *AdInsightsIntegration) Identity(account *domain.Account) map[string]any {
	return map[string]any{
		"account_name": account.DisplayName(),
		"account_id":   account.ExternalID,
		"pod":          account.Pod,
		"monitored":    account.Monitored,
	}
}

func (i *AdInsightsIntegration) Fetch(ctx context.Context, account *domain.Account, datePreset string) (domain.RawRow, error) {
	identity := i.Identity(account)

	metrics, err := i.meta.GetAccountMetrics(ctx, account.ExternalID, datePreset)
	if err != nil {
		if row, ok := businessFailureRow(adInsightsSchema, account, identity, err); ok {
			return row, nil
		}
		return domain.RawRow{}, err
	}

	values := maps.Clone(identity)
	values["spend"] = metrics.Spend
	values["revenue"] = metrics.Revenue
	values["purchases"] = metrics.Purchases
	values["roas"] = metrics.Roas
	values["cpc"] = metrics.CPC
	values["ctr"] = metrics.CTR

	return domain.RawRow{AccountID: account.ID, Values: values}, nil
}
