package refreshing

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/normalizing"
	"github.com/vfg2006/portfolio-refresh-api/pkg/secret"
	"github.com/vfg2006/portfolio-refresh-api/pkg/utils"
)

var podSheetSchema = NewSchema(string(domain.RefreshTypePodSheet)).
	Label("brand_name").
	AccountID("account_id").
	Group("pod").
	Additive("spend", "revenue", "social_revenue", "orders").
	Rate("roas", "cvr", "cpa").
	Status("monitored").
	SortBy("revenue", "spend").
	MustBuild()

var (
	adFields    = []string{"spend"}
	salesFields = []string{"revenue", "social_revenue", "orders"}
)

// PodSheetIntegration cruza anúncios e vendas de cada conta. Falha de uma das fontes
// marca apenas os campos daquela fonte; falha de descriptografia derruba a linha inteira.
type PodSheetIntegration struct {
	meta      meta.Integrator
	sales     ssotica.SSOticaIntegrator
	decrypter Decrypter
	strategy  Strategy
	sink      SinkTarget
	now       func() time.Time
}

func NewPodSheetIntegration(metaIntegrator meta.Integrator, sales ssotica.SSOticaIntegrator, decrypter Decrypter, strategy Strategy, sink SinkTarget) *PodSheetIntegration {
	return &PodSheetIntegration{
		meta:      metaIntegrator,
		sales:     sales,
		decrypter: decrypter,
		strategy:  strategy,
		sink:      sink,
		now:       time.Now,
	}
}

func (i *PodSheetIntegration) Type() domain.RefreshType { return domain.RefreshTypePodSheet }

func (i *PodSheetIntegration) Schema() *Schema { return podSheetSchema }

func (i *PodSheetIntegration) Strategy() Strategy { return i.strategy }

func (i *PodSheetIntegration) Sink() SinkTarget { return i.sink }

func (i *PodSheetIntegration) Filter(scope domain.SnapshotScope) domain.AccountFilter {
	return scopeFilter(scope)
}

func (i *PodSheetIntegration) Identity(account *domain.Account) map[string]any {
	return map[string]any{
		"brand_name": account.DisplayName(),
		"account_id": account.ExternalID,
		"pod":        account.Pod,
		"monitored":  account.Monitored,
	}
}

func (i *PodSheetIntegration) Fetch(ctx context.Context, account *domain.Account, datePreset string) (domain.RawRow, error) {
	values := maps.Clone(i.Identity(account))
	codes := make(map[string]string)

	clicks := i.fetchAds(ctx, account, datePreset, values, codes)
	if err := i.fetchSales(ctx, account, datePreset, values, codes); err != nil {
		return domain.RawRow{}, err
	}

	spend, spendOK := numeric(values["spend"])
	revenue, revenueOK := numeric(values["revenue"])
	orders, ordersOK := numeric(values["orders"])

	values["roas"] = ratio(revenue, spend, revenueOK && spendOK, 1)
	values["cvr"] = ratio(orders, clicks, ordersOK, 100)
	values["cpa"] = ratio(spend, orders, spendOK && ordersOK, 1)

	return domain.RawRow{AccountID: account.ID, Values: values, Codes: codes}, nil
}

// fetchAds devolve os cliques do período, usados no cálculo de conversão.
func (i *PodSheetIntegration) fetchAds(ctx context.Context, account *domain.Account, datePreset string, values map[string]any, codes map[string]string) float64 {
	if account.ExternalID == "" {
		setFields(values, codes, adFields, NotApplicable, "")
		return 0
	}

	metrics, err := i.meta.GetAccountMetrics(ctx, account.ExternalID, datePreset)
	if err != nil {
		sentinel, code := SentinelFor(err)
		setFields(values, codes, adFields, sentinel, code)
		return 0
	}

	values["spend"] = metrics.Spend
	clicks, _ := numeric(metrics.Clicks)
	return clicks
}

func (i *PodSheetIntegration) fetchSales(ctx context.Context, account *domain.Account, datePreset string, values map[string]any, codes map[string]string) error {
	if account.CNPJ == nil || *account.CNPJ == "" {
		setFields(values, codes, salesFields, NotApplicable, "")
		return nil
	}

	token, err := storeToken(i.decrypter, account)
	if errors.Is(err, secret.ErrDecryption) {
		return err
	}
	if err != nil {
		sentinel, code := SentinelFor(err)
		setFields(values, codes, salesFields, sentinel, code)
		return nil
	}

	start, end, err := utils.DateRangeForPreset(datePreset, i.now())
	if err != nil {
		return err
	}

	summary, err := i.sales.GetSalesSummary(ctx, *account.CNPJ, token, start, end)
	if err != nil {
		sentinel, code := SentinelFor(err)
		setFields(values, codes, salesFields, sentinel, code)
		return nil
	}

	values["revenue"] = utils.RoundWithTwoDecimalPlace(summary.Revenue)
	values["social_revenue"] = utils.RoundWithTwoDecimalPlace(summary.SocialRevenue)
	values["orders"] = summary.Orders
	return nil
}

func setFields(values map[string]any, codes map[string]string, fields []string, value, code string) {
	for _, f := range fields {
		values[f] = value
		if code != "" {
			codes[f] = code
		}
	}
}

func numeric(raw any) (float64, bool) {
	return normalizing.NormalizeValue(raw, normalizing.KindNumeric).Float()
}

// ratio devolve "n/a" quando algum operando não está disponível ou o denominador é zero.
// Assim a taxa indefinida fica fora da média da linha de totais.
func ratio(numerator, denominator float64, available bool, scale float64) any {
	if !available || denominator == 0 {
		return NotApplicable
	}
	return utils.RoundWithTwoDecimalPlace(numerator / denominator * scale)
}
