package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/vfg2006/portfolio-refresh-api/internal/config"
)

const (
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

// Client grava linhas em planilhas pela API de valores.
// Sem credenciais configuradas o cliente fica desativado e AppendRows não faz nada.
type Client struct {
	values *gsheets.SpreadsheetsValuesService
}

func NewClient(ctx context.Context, cfg config.Sheets) (*Client, error) {
	opts := clientOptions(cfg)
	if len(opts) == 0 {
		logrus.Warn("Credenciais do Google Sheets não configuradas, exportação desativada")
		return &Client{}, nil
	}

	opts = append(opts, option.WithScopes(gsheets.SpreadsheetsScope))
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimSuffix(baseURL, "/")+"/"))
	}

	return NewClientWithOptions(ctx, opts...)
}

// NewClientWithOptions monta o cliente com opções já resolvidas, como endpoint e http.Client nos testes.
func NewClientWithOptions(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar cliente do Google Sheets: %w", err)
	}
	return &Client{values: service.Spreadsheets.Values}, nil
}

func clientOptions(cfg config.Sheets) []option.ClientOption {
	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return opts
}

func (c *Client) Enabled() bool {
	return c.values != nil
}

func (c *Client) AppendRows(ctx context.Context, sheetID, writeRange string, rows [][]any) error {
	if !c.Enabled() {
		logrus.WithField("sheet_id", sheetID).Debug("Exportação para planilha ignorada: cliente desativado")
		return nil
	}
	if len(rows) == 0 {
		return nil
	}

	valueRange := &gsheets.ValueRange{
		Range:          writeRange,
		MajorDimension: "ROWS",
		Values:         rows,
	}

	_, err := c.values.Append(sheetID, writeRange, valueRange).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("sheets api: status %d: %s: %w", apiErr.Code, apiErr.Message, err)
		}
		return fmt.Errorf("erro ao gravar linhas na planilha: %w", err)
	}

	return nil
}
