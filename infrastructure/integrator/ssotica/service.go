package ssotica

import (
	"context"
	"time"

	ssoticadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/domain"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/ssoticaclient"
)

type SSOticaIntegrator interface {
	GetSalesSummary(ctx context.Context, cnpj, token string, start, end time.Time) (*ssoticadomain.SalesSummary, error)
}

type SSOticaService struct {
	Client ssoticaclient.Client
}

func New(client ssoticaclient.Client) SSOticaIntegrator {
	return &SSOticaService{Client: client}
}

func (s *SSOticaService) GetSalesSummary(ctx context.Context, cnpj, token string, start, end time.Time) (*ssoticadomain.SalesSummary, error) {
	resp, err := s.Client.GetSales(ctx, ssoticaclient.SalesConsultationParams{
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
		CNPJ:      cnpj,
		Token:     token,
	})
	if err != nil {
		return nil, err
	}

	summary := ssoticadomain.Summarize(resp)
	return &summary, nil
}
