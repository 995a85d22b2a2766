package refreshing

import (
	"context"
	"errors"
	"maps"
	"net"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/normalizing"
	"github.com/vfg2006/portfolio-refresh-api/pkg/secret"
)

const (
	SentinelCouldNotRetrieve = "Could not retrieve"
	SentinelDecryptionFailed = "Decryption failed"
	SentinelNetworkTimeout   = "Network timeout"
)

// SentinelError é implementado por erros de integração que já sabem
// qual texto e código representam a falha.
type SentinelError interface {
	error
	Sentinel() string
	Code() string
}

// SentinelFor traduz um erro de busca no texto gravado nos campos da conta.
func SentinelFor(err error) (string, string) {
	var sentinelErr SentinelError
	switch {
	case errors.As(err, &sentinelErr):
		return sentinelErr.Sentinel(), sentinelErr.Code()
	case errors.Is(err, secret.ErrDecryption):
		return SentinelDecryptionFailed, "decryption_failed"
	case errors.Is(err, context.DeadlineExceeded):
		return SentinelNetworkTimeout, "timeout"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return SentinelNetworkTimeout, "timeout"
	}

	return SentinelCouldNotRetrieve, "fetch_failed"
}

// FailureRow monta a linha de uma conta cuja busca falhou: identidade preservada e
// todos os campos numéricos e de status preenchidos com o texto de falha.
func FailureRow(schema *Schema, accountID string, identity map[string]any, err error) domain.RawRow {
	sentinel, code := SentinelFor(err)

	values := maps.Clone(identity)
	if values == nil {
		values = make(map[string]any)
	}
	codes := make(map[string]string)

	for _, field := range schema.fields {
		if field.Kind != normalizing.KindNumeric && field.Role != RoleStatus {
			continue
		}
		if _, ok := values[field.Name]; ok {
			continue
		}
		values[field.Name] = sentinel
		codes[field.Name] = code
	}

	return domain.RawRow{AccountID: accountID, Values: values, Codes: codes}
}
