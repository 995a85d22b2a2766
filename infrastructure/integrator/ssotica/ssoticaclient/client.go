package ssoticaclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/portfolio-refresh-api/internal/config"
)

type Client interface {
	GetSales(ctx context.Context, params SalesConsultationParams) (SalesConsultationResponse, error)
}

type SSOticaClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.SSOtica.RequestTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}

	return &SSOticaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.SSOtica.URL,
	}
}
