package normalizing

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

type FieldKind int

const (
	KindNumeric FieldKind = iota
	KindPassthrough
)

func (k FieldKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "passthrough"
}

// dígitos, separador de milhar opcional, um ponto decimal opcional e espaços nas bordas
var numericPattern = regexp.MustCompile(`^\s*(\d{1,3}(,\d{3})+|\d+)(\.\d+)?\s*$`)

// NormalizeValue converte o valor recebido da integração em número ou mantém o texto original.
// Nunca retorna erro: o que não é número continua como texto para o classificador.
func NormalizeValue(raw any, kind FieldKind) domain.FieldValue {
	switch v := raw.(type) {
	case nil:
		return domain.UnparsedValue("")
	case string:
		if kind != KindNumeric || !numericPattern.MatchString(v) {
			return domain.UnparsedValue(v)
		}
		n, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		if err != nil {
			return domain.UnparsedValue(v)
		}
		return domain.NumericValue(n)
	case float64:
		return domain.NumericValue(v)
	case float32:
		return domain.NumericValue(float64(v))
	case int:
		return domain.NumericValue(float64(v))
	case int32:
		return domain.NumericValue(float64(v))
	case int64:
		return domain.NumericValue(float64(v))
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return domain.UnparsedValue(v.String())
		}
		return domain.NumericValue(n)
	case bool:
		return domain.UnparsedValue(strconv.FormatBool(v))
	case domain.FieldValue:
		return v
	default:
		return domain.UnparsedValue(fmt.Sprint(v))
	}
}
