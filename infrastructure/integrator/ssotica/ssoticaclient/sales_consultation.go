package ssoticaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"

	jsoniter "github.com/json-iterator/go"

	ssoticadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type SalesConsultationParams struct {
	StartDate string
	EndDate   string
	CNPJ      string
	Token     string
}

type SalesConsultationResponse []ssoticadomain.Order

// StatusError é devolvido quando a API responde com status diferente de 200.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("requisição falhou com status: %s", e.Status)
}

// IsBusinessFailure indica problema da loja (token, cadastro) e não de disponibilidade.
func (e *StatusError) IsBusinessFailure() bool {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return true
	}
	return false
}

func (e *StatusError) Sentinel() string {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "Unauthorized store token"
	case http.StatusNotFound:
		return "Store not found"
	case http.StatusTooManyRequests:
		return "Rate limit reached"
	}
	return "Could not retrieve"
}

func (e *StatusError) Code() string {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "unauthorized"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "rate_limited"
	}
	return "upstream_error"
}

func (c *SSOticaClient) GetSales(ctx context.Context, params SalesConsultationParams) (SalesConsultationResponse, error) {
	var response SalesConsultationResponse

	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return response, fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "/integracoes/vendas/periodo")

	query := endpoint.Query()
	query.Set("inicio_periodo", params.StartDate)
	query.Set("fim_periodo", params.EndDate)
	query.Set("cnpj", params.CNPJ)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return response, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+params.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return response, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return response, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return response, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response, nil
}
