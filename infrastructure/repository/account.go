package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/database/postgres"
	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

const accountsTable = "accounts a"

const accountColumns = "a.id, a.external_id, a.name, a.nickname, a.brand_name, a.cnpj, a.pod, a.monitored, a.origin, a.encrypted_token, a.status"

type AccountRepository interface {
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
}

type accountRepository struct {
	conn *postgres.Connection
}

func NewAccountRepository(conn *postgres.Connection) AccountRepository {
	return &accountRepository{
		conn: conn,
	}
}

func (a *accountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	accountsSQL, accountsArgs, err := squirrel.
		Select(accountColumns).
		From(accountsTable).
		Where(squirrel.Eq{"a.id": accountID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	acc, err := scanAccount(a.conn.QueryRowContext(ctx, accountsSQL, accountsArgs...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return acc, nil
}

// ListAccounts devolve as contas do filtro ordenadas pelo nome de exibição.
func (a *accountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	queryBuilder := squirrel.
		Select(accountColumns).
		From(accountsTable).
		OrderBy("COALESCE(a.nickname, a.brand_name, a.name) ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.status": filter.Status})
	}
	if filter.Pod != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.pod": filter.Pod})
	}
	if filter.Origin != "" {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.origin": filter.Origin})
	}
	if filter.MonitoredOnly {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"a.monitored": true})
	}
	if filter.RequireCNPJ {
		queryBuilder = queryBuilder.Where(squirrel.And{
			squirrel.NotEq{"a.cnpj": nil},
			squirrel.NotEq{"a.cnpj": ""},
		})
	}

	accountsSQL, accountsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := a.conn.QueryContext(ctx, accountsSQL, accountsArgs...)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar contas: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao deserializar a conta: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar sobre os resultados: %w", err)
	}

	return accounts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*domain.Account, error) {
	acc := &domain.Account{}
	var brandName sql.NullString

	if err := row.Scan(
		&acc.ID,
		&acc.ExternalID,
		&acc.Name,
		&acc.Nickname,
		&brandName,
		&acc.CNPJ,
		&acc.Pod,
		&acc.Monitored,
		&acc.Origin,
		&acc.EncryptedToken,
		&acc.Status,
	); err != nil {
		return nil, err
	}

	acc.BrandName = brandName.String
	return acc, nil
}
