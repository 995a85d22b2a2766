package metaclient

import (
	"context"
	"net/http"
	"time"

	metadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
)

type Client interface {
	GetAdAccountInsightsByID(ctx context.Context, accountID, datePreset string) (*metadomain.AdAccountInsight, error)
}

type MetaClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg *config.Config) Client {
	timeout := cfg.Meta.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &MetaClient{
		baseURL:     cfg.Meta.URL,
		accessToken: cfg.Meta.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}
