package ssoticaclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSOticaClient_GetSales(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/integracoes/vendas/periodo", r.URL.Path)
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("inicio_periodo"))
		assert.Equal(t, "2024-03-15", r.URL.Query().Get("fim_periodo"))
		assert.Equal(t, "12345678000199", r.URL.Query().Get("cnpj"))
		assert.Equal(t, "Bearer token-loja", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`[{"id":1,"valor_liquido":150.5,"origensCliente":["Redes Sociais"]},{"id":2,"valor_liquido":49.5}]`))
	}))
	defer server.Close()

	client := &SSOticaClient{httpClient: http.DefaultClient, baseURL: server.URL + "/api/v1"}
	orders, err := client.GetSales(context.Background(), SalesConsultationParams{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-15",
		CNPJ:      "12345678000199",
		Token:     "token-loja",
	})
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, 150.5, orders[0].NetAmount)
}

func TestSSOticaClient_GetSales_StatusDeErro(t *testing.T) {
	tests := []struct {
		status       int
		wantSentinel string
		wantCode     string
	}{
		{status: http.StatusUnauthorized, wantSentinel: "Unauthorized store token", wantCode: "unauthorized"},
		{status: http.StatusNotFound, wantSentinel: "Store not found", wantCode: "not_found"},
		{status: http.StatusTooManyRequests, wantSentinel: "Rate limit reached", wantCode: "rate_limited"},
		{status: http.StatusBadGateway, wantSentinel: "Could not retrieve", wantCode: "upstream_error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := &SSOticaClient{httpClient: http.DefaultClient, baseURL: server.URL}
			_, err := client.GetSales(context.Background(), SalesConsultationParams{})

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.wantSentinel, statusErr.Sentinel())
			assert.Equal(t, tt.wantCode, statusErr.Code())
		})
	}
}
