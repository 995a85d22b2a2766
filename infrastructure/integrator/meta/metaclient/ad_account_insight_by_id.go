package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	metadomain "github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const insightFields = "account_id,account_name,spend,impressions,clicks,cpc,ctr,actions,action_values,purchase_roas"

type ResponseAdAccountMetrics struct {
	Data []metadomain.AdAccountInsight `json:"data"`
}

func (c *MetaClient) GetAdAccountInsightsByID(ctx context.Context, accountID, datePreset string) (*metadomain.AdAccountInsight, error) {
	params := url.Values{}
	params.Set("fields", insightFields)
	params.Set("date_preset", datePreset)
	params.Set("access_token", c.accessToken)

	endpoint := fmt.Sprintf("%s/act_%s/insights?%s", c.baseURL, strings.TrimPrefix(accountID, "act_"), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, parseErrorResponse(resp.StatusCode, body)
	}

	var response ResponseAdAccountMetrics
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar JSON")
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(response.Data) == 0 {
		return nil, &metadomain.NoDataError{AccountID: accountID}
	}

	return &response.Data[0], nil
}

func parseErrorResponse(statusCode int, body []byte) error {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil || errorResp.Error.Code == 0 {
		return fmt.Errorf("erro na resposta da API. Status: %d, Corpo: %s", statusCode, string(body))
	}
	return metadomain.NewAPIError(statusCode, &errorResp)
}
