package refreshing

import (
	"time"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/normalizing"
)

// Pipeline normaliza, classifica e agrega as linhas de uma integração.
type Pipeline struct {
	schema     *Schema
	classifier *normalizing.Classifier
}

func NewPipeline(schema *Schema, classifier *normalizing.Classifier) *Pipeline {
	if classifier == nil {
		classifier = normalizing.DefaultClassifier()
	}
	return &Pipeline{schema: schema, classifier: classifier}
}

func (p *Pipeline) Schema() *Schema {
	return p.schema
}

// Normalize converte uma linha bruta. Campos de identidade nunca passam pelo classificador.
func (p *Pipeline) Normalize(raw domain.RawRow) domain.NormalizedRow {
	values := make([]domain.FieldValue, len(p.schema.fields))
	var candidates []normalizing.Candidate

	for i, field := range p.schema.fields {
		value := normalizing.NormalizeValue(raw.Values[field.Name], field.Kind)
		values[i] = value

		code := raw.Codes[field.Name]
		classifiable := field.Kind == normalizing.KindNumeric || field.Role == RoleStatus
		if code == "" && (!classifiable || value.IsNumeric()) {
			continue
		}

		candidates = append(candidates, normalizing.Candidate{
			Field: field.Name,
			Value: value.String(),
			Code:  code,
		})
	}

	row := domain.NormalizedRow{AccountID: raw.AccountID, Values: values}
	if detail := p.classifier.Classify(candidates); detail != nil {
		row.IsError = true
		row.ErrorDetail = detail
	}

	return row
}

func (p *Pipeline) NormalizeAll(rows []domain.RawRow) []domain.NormalizedRow {
	normalized := make([]domain.NormalizedRow, len(rows))
	for i, raw := range rows {
		normalized[i] = p.Normalize(raw)
	}
	return normalized
}

// Run devolve as linhas ordenadas e a linha de totais separada.
func (p *Pipeline) Run(rows []domain.RawRow, now time.Time) ([]domain.NormalizedRow, domain.NormalizedRow) {
	return Aggregate(p.schema, p.NormalizeAll(rows), now)
}
