package refreshing

import (
	"context"
	"errors"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

// ScopeAll seleciona todas as contas ativas, sem filtro de pod.
const ScopeAll = "all"

var ErrMissingCredential = &credentialError{}

type credentialError struct{}

func (e *credentialError) Error() string    { return "conta sem credencial cadastrada" }
func (e *credentialError) Sentinel() string { return "Missing credentials" }
func (e *credentialError) Code() string     { return "missing_credentials" }

// Integration é o que cada chamada de atualização fornece ao pipeline comum.
type Integration interface {
	Type() domain.RefreshType
	Schema() *Schema
	Strategy() Strategy
	Filter(scope domain.SnapshotScope) domain.AccountFilter
	Identity(account *domain.Account) map[string]any
	Fetch(ctx context.Context, account *domain.Account, datePreset string) (domain.RawRow, error)
	Sink() SinkTarget
}

// SinkTarget aponta a planilha que recebe a exportação; SheetID vazio desativa.
type SinkTarget struct {
	SheetID string
	Range   string
}

func scopeFilter(scope domain.SnapshotScope) domain.AccountFilter {
	filter := domain.AccountFilter{Status: domain.AccountStatusActive}
	if scope.ScopeID != "" && scope.ScopeID != ScopeAll {
		filter.Pod = scope.ScopeID
	}
	return filter
}

// Decrypter abre os tokens de loja guardados cifrados.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}

func storeToken(decrypter Decrypter, account *domain.Account) (string, error) {
	if account.EncryptedToken == nil || *account.EncryptedToken == "" {
		return "", ErrMissingCredential
	}
	return decrypter.Decrypt(*account.EncryptedToken)
}

type businessFailure interface {
	SentinelError
	IsBusinessFailure() bool
}

// businessFailureRow trata falhas de negócio (permissão, id, token, sem dados) como linha
// normal, sem passar pelo orquestrador.
func businessFailureRow(schema *Schema, account *domain.Account, identity map[string]any, err error) (domain.RawRow, bool) {
	var business businessFailure
	if errors.As(err, &business) && business.IsBusinessFailure() {
		return FailureRow(schema, account.ID, identity, err), true
	}

	var sentinelErr SentinelError
	if errors.As(err, &sentinelErr) && sentinelErr.Code() == "no_data" {
		return FailureRow(schema, account.ID, identity, err), true
	}

	return domain.RawRow{}, false
}
