package ssoticadomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	orders := []Order{
		{NetAmount: 1000, CustomerOrigins: []Origin{SocialNetworkOrigin}},
		{NetAmount: 500, CustomerOrigins: []Origin{"Indicação"}},
		{NetAmount: 250, CustomerOrigins: []Origin{"Tráfego Pago"}},
		{NetAmount: 999, Status: "cancelada", CustomerOrigins: []Origin{SocialNetworkOrigin}},
		{NetAmount: 100},
	}

	summary := Summarize(orders)

	assert.Equal(t, 4, summary.Orders)
	assert.Equal(t, 1850.0, summary.Revenue)
	assert.Equal(t, 1250.0, summary.SocialRevenue)
}

func TestSummarize_SemVendas(t *testing.T) {
	assert.Equal(t, SalesSummary{}, Summarize(nil))
}
