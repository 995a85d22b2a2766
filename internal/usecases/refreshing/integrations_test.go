package refreshing

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	metadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/domain"
	metamocks "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/mocks"
	ssoticadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/domain"
	ssoticamocks "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/mocks"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/ssoticaclient"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/pkg/secret"
)

type stubDecrypter struct {
	plain string
	err   error
}

func (s stubDecrypter) Decrypt(string) (string, error) {
	return s.plain, s.err
}

func ptr[T any](v T) *T {
	return &v
}

func storeAccount() *domain.Account {
	return &domain.Account{
		ID:             "acc-1",
		ExternalID:     "act_123",
		Name:           "Ótica Centro",
		Pod:            "pod-1",
		Monitored:      true,
		CNPJ:           ptr("12345678000199"),
		EncryptedToken: ptr("cifrado"),
	}
}

func TestAdInsightsIntegration_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	integration := NewAdInsightsIntegration(metaIntegrator, 5, SinkTarget{})

	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), "act_123", "last_7d").Return(&metadomain.AccountMetrics{
		Spend: "1,000.50", Revenue: "3000", Purchases: "10", Roas: "2.99", CPC: "1.1", CTR: "0.8",
	}, nil)

	raw, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.NoError(t, err)

	row := NewPipeline(integration.Schema(), nil).Normalize(raw)
	assert.False(t, row.IsError)

	idx, _ := integration.Schema().Index("spend")
	spend, ok := row.Values[idx].Float()
	require.True(t, ok)
	assert.Equal(t, 1000.5, spend)
}

func TestAdInsightsIntegration_Fetch_FalhaDeNegocioViraLinha(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	integration := NewAdInsightsIntegration(metaIntegrator, 5, SinkTarget{})

	apiErr := &metadomain.APIError{StatusCode: http.StatusForbidden, Details: metadomain.ErrorDetails{Code: 200, Message: "Permissions error"}}
	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr)

	raw, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.NoError(t, err)

	assert.Equal(t, "Missing Permissions", raw.Values["spend"])
	assert.Equal(t, "permission_denied", raw.Codes["revenue"])
	assert.Equal(t, "Ótica Centro", raw.Values["account_name"])
	assert.Equal(t, true, raw.Values["monitored"])
}

func TestAdInsightsIntegration_Fetch_FalhaDeTransporteSobeErro(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	integration := NewAdInsightsIntegration(metaIntegrator, 5, SinkTarget{})

	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)

	_, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFinanceBatchIntegration_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
	integration := NewFinanceBatchIntegration(sales, stubDecrypter{plain: "token-loja"}, 5, SinkTarget{})
	integration.now = func() time.Time { return fixedNow }

	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	sales.EXPECT().GetSalesSummary(gomock.Any(), "12345678000199", "token-loja", start, end).
		Return(&ssoticadomain.SalesSummary{Revenue: 1000, SocialRevenue: 400, Orders: 3}, nil)

	raw, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.NoError(t, err)

	assert.Equal(t, 1000.0, raw.Values["revenue"])
	assert.Equal(t, 3, raw.Values["orders"])
	assert.Equal(t, 333.33, raw.Values["avg_ticket"])
	assert.Equal(t, "12345678000199", raw.Values["store_id"])
}

func TestFinanceBatchIntegration_Fetch_Erros(t *testing.T) {
	tests := []struct {
		name      string
		account   func() *domain.Account
		decrypter stubDecrypter
		salesErr  error
		wantErr   error
		wantValue string
	}{
		{
			name: "Sem token cadastrado",
			account: func() *domain.Account {
				a := storeAccount()
				a.EncryptedToken = nil
				return a
			},
			wantErr: ErrMissingCredential,
		},
		{
			name:      "Token não descriptografa",
			account:   storeAccount,
			decrypter: stubDecrypter{err: secret.ErrDecryption},
			wantErr:   secret.ErrDecryption,
		},
		{
			name:      "Token recusado pela loja vira linha",
			account:   storeAccount,
			decrypter: stubDecrypter{plain: "t"},
			salesErr:  &ssoticaclient.StatusError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"},
			wantValue: "Unauthorized store token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
			if tt.salesErr != nil {
				sales.EXPECT().GetSalesSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.salesErr)
			}
			integration := NewFinanceBatchIntegration(sales, tt.decrypter, 5, SinkTarget{})

			raw, err := integration.Fetch(context.Background(), tt.account(), "last_7d")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, raw.Values["revenue"])
		})
	}
}

func TestPodSheetIntegration_Fetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
	integration := NewPodSheetIntegration(metaIntegrator, sales, stubDecrypter{plain: "t"}, Strategy{BatchSize: 75, Concurrency: 5}, SinkTarget{})
	integration.now = func() time.Time { return fixedNow }

	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), "act_123", "last_7d").
		Return(&metadomain.AccountMetrics{Spend: "500", Clicks: "200"}, nil)
	sales.EXPECT().GetSalesSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ssoticadomain.SalesSummary{Revenue: 2000, Orders: 10}, nil)

	raw, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.NoError(t, err)

	assert.Equal(t, 4.0, raw.Values["roas"])
	assert.Equal(t, 5.0, raw.Values["cvr"])
	assert.Equal(t, 50.0, raw.Values["cpa"])
	assert.Empty(t, raw.Codes)
}

func TestPodSheetIntegration_Fetch_FalhaParcialMarcaSoOsCamposDaFonte(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
	integration := NewPodSheetIntegration(metaIntegrator, sales, stubDecrypter{plain: "t"}, Strategy{}, SinkTarget{})

	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
	sales.EXPECT().GetSalesSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ssoticadomain.SalesSummary{Revenue: 2000, Orders: 10}, nil)

	raw, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.NoError(t, err)

	assert.Equal(t, SentinelCouldNotRetrieve, raw.Values["spend"])
	assert.Equal(t, 2000.0, raw.Values["revenue"])
	assert.Equal(t, NotApplicable, raw.Values["roas"])

	row := NewPipeline(integration.Schema(), nil).Normalize(raw)
	require.True(t, row.IsError)
	assert.Equal(t, 1, row.ErrorDetail.ErrorCount)
	assert.Equal(t, "spend", row.ErrorDetail.Errors[0].Field)
}

func TestPodSheetIntegration_Fetch_DescriptografiaDerrubaLinha(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
	integration := NewPodSheetIntegration(metaIntegrator, sales, stubDecrypter{err: secret.ErrDecryption}, Strategy{}, SinkTarget{})

	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&metadomain.AccountMetrics{Spend: "500"}, nil)

	_, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.ErrorIs(t, err, secret.ErrDecryption)

	sentinel, code := SentinelFor(err)
	assert.Equal(t, SentinelDecryptionFailed, sentinel)
	assert.Equal(t, "decryption_failed", code)
}

func TestPodSheetIntegration_Fetch_ContaSemLoja(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	integration := NewPodSheetIntegration(metaIntegrator, nil, stubDecrypter{}, Strategy{}, SinkTarget{})

	account := storeAccount()
	account.CNPJ = nil
	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&metadomain.AccountMetrics{Spend: "500", Clicks: "10"}, nil)

	raw, err := integration.Fetch(context.Background(), account, "last_7d")
	require.NoError(t, err)

	assert.Equal(t, NotApplicable, raw.Values["revenue"])
	assert.Equal(t, NotApplicable, raw.Values["roas"])
	assert.False(t, NewPipeline(integration.Schema(), nil).Normalize(raw).IsError)
}

func TestPodSheetIntegration_TaxaComDenominadorZeroFicaForaDaMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	metaIntegrator := metamocks.NewMockIntegrator(ctrl)
	sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
	integration := NewPodSheetIntegration(metaIntegrator, sales, stubDecrypter{plain: "t"}, Strategy{}, SinkTarget{})
	integration.now = func() time.Time { return fixedNow }

	semInvestimento := storeAccount()
	comInvestimento := storeAccount()
	comInvestimento.ID = "acc-2"
	comInvestimento.ExternalID = "act_456"
	comInvestimento.CNPJ = ptr("98765432000111")

	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), "act_123", "last_7d").
		Return(&metadomain.AccountMetrics{Spend: "0", Clicks: "0"}, nil)
	metaIntegrator.EXPECT().GetAccountMetrics(gomock.Any(), "act_456", "last_7d").
		Return(&metadomain.AccountMetrics{Spend: "500", Clicks: "200"}, nil)
	sales.EXPECT().GetSalesSummary(gomock.Any(), "12345678000199", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ssoticadomain.SalesSummary{Revenue: 1000, Orders: 0}, nil)
	sales.EXPECT().GetSalesSummary(gomock.Any(), "98765432000111", gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ssoticadomain.SalesSummary{Revenue: 2000, Orders: 10}, nil)

	first, err := integration.Fetch(context.Background(), semInvestimento, "last_7d")
	require.NoError(t, err)
	second, err := integration.Fetch(context.Background(), comInvestimento, "last_7d")
	require.NoError(t, err)

	assert.Equal(t, NotApplicable, first.Values["roas"])
	assert.Equal(t, NotApplicable, first.Values["cpa"])
	assert.Equal(t, NotApplicable, first.Values["cvr"])

	schema := integration.Schema()
	rows, totals := NewPipeline(schema, nil).Run([]domain.RawRow{first, second}, fixedNow)
	require.Len(t, rows, 2)
	assert.False(t, rows[0].IsError)
	assert.False(t, rows[1].IsError)

	for field, want := range map[string]float64{"roas": 4, "cpa": 50, "cvr": 5} {
		idx, ok := schema.Index(field)
		require.True(t, ok)
		got, ok := totals.Values[idx].Float()
		require.True(t, ok, field)
		assert.Equal(t, want, got, field)
	}
}

func TestFinanceBatchIntegration_Fetch_SemPedidosTicketMedioNA(t *testing.T) {
	ctrl := gomock.NewController(t)
	sales := ssoticamocks.NewMockSSOticaIntegrator(ctrl)
	integration := NewFinanceBatchIntegration(sales, stubDecrypter{plain: "token-loja"}, 5, SinkTarget{})
	integration.now = func() time.Time { return fixedNow }

	sales.EXPECT().GetSalesSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ssoticadomain.SalesSummary{Revenue: 0, Orders: 0}, nil)

	raw, err := integration.Fetch(context.Background(), storeAccount(), "last_7d")
	require.NoError(t, err)

	assert.Equal(t, NotApplicable, raw.Values["avg_ticket"])
	assert.False(t, NewPipeline(integration.Schema(), nil).Normalize(raw).IsError)
}
