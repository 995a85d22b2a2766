package repository

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

var accountColumnNames = []string{"id", "external_id", "name", "nickname", "brand_name", "cnpj", "pod", "monitored", "origin", "encrypted_token", "status"}

func TestAccountRepository_ListAccounts(t *testing.T) {
	tests := []struct {
		name      string
		filter    domain.AccountFilter
		wantWhere string
		wantArgs  []driver.Value
	}{
		{
			name:      "Filtra por status e pod",
			filter:    domain.AccountFilter{Status: domain.AccountStatusActive, Pod: "pod-1"},
			wantWhere: "WHERE a.status = $1 AND a.pod = $2",
			wantArgs:  []driver.Value{domain.AccountStatusActive, "pod-1"},
		},
		{
			name:      "Exige CNPJ preenchido",
			filter:    domain.AccountFilter{Status: domain.AccountStatusActive, RequireCNPJ: true},
			wantWhere: "WHERE a.status = $1 AND (a.cnpj IS NOT NULL AND a.cnpj <> $2)",
			wantArgs:  []driver.Value{domain.AccountStatusActive, ""},
		},
		{
			name:      "Somente meta monitoradas",
			filter:    domain.AccountFilter{Origin: "meta", MonitoredOnly: true},
			wantWhere: "WHERE a.origin = $1 AND a.monitored = $2",
			wantArgs:  []driver.Value{"meta", true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t)
			repo := NewAccountRepository(conn)

			mock.ExpectQuery(regexp.QuoteMeta("FROM accounts a " + tt.wantWhere + " ORDER BY")).
				WithArgs(tt.wantArgs...).
				WillReturnRows(sqlmock.NewRows(accountColumnNames).
					AddRow("acc-1", "act_1", "Loja 1", nil, "Marca", "123", "pod-1", true, "meta", "cifrado", "ACTIVE").
					AddRow("acc-2", "act_2", "Loja 2", "Apelido", nil, nil, "pod-1", false, "meta", nil, "ACTIVE"))

			accounts, err := repo.ListAccounts(context.Background(), tt.filter)

			require.NoError(t, err)
			require.Len(t, accounts, 2)
			assert.Equal(t, "Marca", accounts[0].DisplayName())
			assert.Equal(t, "cifrado", *accounts[0].EncryptedToken)
			assert.Equal(t, "Apelido", accounts[1].DisplayName())
			assert.Nil(t, accounts[1].CNPJ)
			assert.Empty(t, accounts[1].BrandName)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_GetAccountByID_NaoEncontrada(t *testing.T) {
	conn, mock := newMockConn(t)
	repo := NewAccountRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts a WHERE a.id = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(accountColumnNames))

	account, err := repo.GetAccountByID(context.Background(), "nope")

	require.NoError(t, err)
	assert.Nil(t, account)
}
