package ssoticadomain

import (
	"slices"
)

type Origin string

const (
	SocialNetworkOrigin Origin = "Redes Sociais"
	OthersOrigin        Origin = "others"
)

var SocialNetworkOrigins = []Origin{
	SocialNetworkOrigin,
	"Tráfego Pago",
	"Rede Social",
	"Redes Sociais / Trafego Pago",
	"Trafego Pago",
	"Redes Sociais / Trafego",
	"Redes Socias",
}

type Order struct {
	ID              int      `json:"id,omitempty"`
	Date            string   `json:"data,omitempty"`
	Status          string   `json:"status,omitempty"`
	Number          int      `json:"numero,omitempty"`
	GrossAmount     float64  `json:"valor_bruto,omitempty"`
	Discount        float64  `json:"desconto,omitempty"`
	NetAmount       float64  `json:"valor_liquido,omitempty"`
	CustomerOrigins []Origin `json:"origensCliente,omitempty"`
}

func (o Order) IsCanceled() bool {
	return o.Status == "cancelada" || o.Status == "CANCELADA"
}

func (o Order) FromSocialNetwork() bool {
	return len(o.CustomerOrigins) > 0 && slices.Contains(SocialNetworkOrigins, o.CustomerOrigins[0])
}

// SalesSummary resume as vendas de uma loja no período.
type SalesSummary struct {
	Revenue       float64
	SocialRevenue float64
	Orders        int
}

// Summarize ignora vendas canceladas.
func Summarize(orders []Order) SalesSummary {
	var summary SalesSummary
	for _, order := range orders {
		if order.IsCanceled() {
			continue
		}
		summary.Orders++
		summary.Revenue += order.NetAmount
		if order.FromSocialNetwork() {
			summary.SocialRevenue += order.NetAmount
		}
	}
	return summary
}
