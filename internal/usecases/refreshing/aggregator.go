package refreshing

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

const NotApplicable = "n/a"

// Aggregate ordena as linhas por valor e custo decrescentes e monta a linha de totais.
// A entrada não é alterada.
func Aggregate(schema *Schema, rows []domain.NormalizedRow, now time.Time) ([]domain.NormalizedRow, domain.NormalizedRow) {
	sorted := slices.Clone(rows)

	valueIdx, _ := schema.Index(schema.valueKey)
	costIdx, _ := schema.Index(schema.costKey)

	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := sortKey(sorted[i], valueIdx), sortKey(sorted[j], valueIdx)
		if vi != vj {
			return vi > vj
		}
		return sortKey(sorted[i], costIdx) > sortKey(sorted[j], costIdx)
	})

	return sorted, Totals(schema, rows, now)
}

// sortKey trata valores não numéricos como -Inf para que fiquem no fim.
func sortKey(row domain.NormalizedRow, idx int) float64 {
	if idx >= len(row.Values) {
		return math.Inf(-1)
	}
	if n, ok := row.Values[idx].Float(); ok {
		return n
	}
	return math.Inf(-1)
}

// Totals soma os campos aditivos e tira a média simples dos campos de taxa,
// considerando apenas valores numéricos.
func Totals(schema *Schema, rows []domain.NormalizedRow, now time.Time) domain.NormalizedRow {
	values := make([]domain.FieldValue, len(schema.fields))

	for i, field := range schema.fields {
		switch field.Role {
		case RoleLabel:
			values[i] = domain.UnparsedValue(domain.TotalsLabel)
		case RoleGroup:
			values[i] = domain.UnparsedValue(now.Format(time.DateOnly))
		case RoleAdditive:
			sum, _ := sumColumn(rows, i)
			values[i] = domain.NumericValue(sum.InexactFloat64())
		case RoleRate:
			sum, count := sumColumn(rows, i)
			if count == 0 {
				values[i] = domain.NumericValue(0)
				continue
			}
			values[i] = domain.NumericValue(sum.Div(decimal.NewFromInt(int64(count))).InexactFloat64())
		default:
			values[i] = domain.UnparsedValue(NotApplicable)
		}
	}

	return domain.NormalizedRow{Values: values, IsTotal: true}
}

// sumColumn soma as células numéricas da coluna. Linhas com is_error entram
// com os campos que vieram numéricos; só as células com erro ficam de fora.
func sumColumn(rows []domain.NormalizedRow, idx int) (decimal.Decimal, int) {
	sum := decimal.Zero
	count := 0
	for _, row := range rows {
		if row.IsTotal || idx >= len(row.Values) {
			continue
		}
		n, ok := row.Values[idx].Float()
		if !ok {
			continue
		}
		sum = sum.Add(decimal.NewFromFloat(n))
		count++
	}
	return sum, count
}
