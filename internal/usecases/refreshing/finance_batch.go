package refreshing

import (
	"context"
	"maps"
	"time"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/pkg/utils"
)

var financeBatchSchema = NewSchema(string(domain.RefreshTypeFinanceBatch)).
	Label("brand_name").
	AccountID("store_id").
	Group("pod").
	Additive("revenue", "social_revenue", "orders").
	Rate("avg_ticket").
	SortBy("revenue", "orders").
	MustBuild()

// FinanceBatchIntegration consulta as vendas de cada loja com o token da própria loja.
type FinanceBatchIntegration struct {
	sales     ssotica.SSOticaIntegrator
	decrypter Decrypter
	strategy  Strategy
	sink      SinkTarget
	now       func() time.Time
}

func NewFinanceBatchIntegration(sales ssotica.SSOticaIntegrator, decrypter Decrypter, concurrency int, sink SinkTarget) *FinanceBatchIntegration {
	return &FinanceBatchIntegration{
		sales:     sales,
		decrypter: decrypter,
		strategy:  Strategy{Concurrency: concurrency},
		sink:      sink,
		now:       time.Now,
	}
}

func (i *FinanceBatchIntegration) Type() domain.RefreshType { return domain.RefreshTypeFinanceBatch }

func (i *FinanceBatchIntegration) Schema() *Schema { return financeBatchSchema }

func (i *FinanceBatchIntegration) Strategy() Strategy { return i.strategy }

func (i *FinanceBatchIntegration) Sink() SinkTarget { return i.sink }

func (i *FinanceBatchIntegration) Filter(scope domain.SnapshotScope) domain.AccountFilter {
	filter := scopeFilter(scope)
	filter.RequireCNPJ = true
	return filter
}

func (i *FinanceBatchIntegration) Identity(account *domain.Account) map[string]any {
	storeID := ""
	if account.CNPJ != nil {
		storeID = *account.CNPJ
	}
	return map[string]any{
		"brand_name": account.DisplayName(),
		"store_id":   storeID,
		"pod":        account.Pod,
	}
}

func (i *FinanceBatchIntegration) Fetch(ctx context.Context, account *domain.Account, datePreset string) (domain.RawRow, error) {
	identity := i.Identity(account)

	token, err := storeToken(i.decrypter, account)
	if err != nil {
		return domain.RawRow{}, err
	}

	start, end, err := utils.DateRangeForPreset(datePreset, i.now())
	if err != nil {
		return domain.RawRow{}, err
	}

	summary, err := i.sales.GetSalesSummary(ctx, identity["store_id"].(string), token, start, end)
	if err != nil {
		if row, ok := businessFailureRow(financeBatchSchema, account, identity, err); ok {
			return row, nil
		}
		return domain.RawRow{}, err
	}

	avgTicket := ratio(summary.Revenue, float64(summary.Orders), true, 1)

	values := maps.Clone(identity)
	values["revenue"] = utils.RoundWithTwoDecimalPlace(summary.Revenue)
	values["social_revenue"] = utils.RoundWithTwoDecimalPlace(summary.SocialRevenue)
	values["orders"] = summary.Orders
	values["avg_ticket"] = avgTicket

	return domain.RawRow{AccountID: account.ID, Values: values}, nil
}
