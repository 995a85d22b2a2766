package refreshing

import (
	"fmt"

	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/normalizing"
)

// FieldRole define como o campo é tratado na linha de totais.
type FieldRole int

const (
	RoleIdentity FieldRole = iota
	RoleLabel
	RoleAccountID
	RoleGroup
	RoleAdditive
	RoleRate
	RoleMetric
	RoleStatus
)

type Field struct {
	Name string
	Kind normalizing.FieldKind
	Role FieldRole
}

// Schema descreve a linha de uma integração: ordem dos campos, papel de cada um
// e as chaves de ordenação.
type Schema struct {
	name     string
	fields   []Field
	index    map[string]int
	valueKey string
	costKey  string
}

func (s *Schema) Name() string {
	return s.name
}

func (s *Schema) Fields() []Field {
	return s.fields
}

func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

func (s *Schema) Headers() []string {
	headers := make([]string, len(s.fields))
	for i, f := range s.fields {
		headers[i] = f.Name
	}
	return headers
}

func (s *Schema) ValueKey() string {
	return s.valueKey
}

func (s *Schema) CostKey() string {
	return s.costKey
}

// fieldWithRole devolve o primeiro campo com o papel informado.
func (s *Schema) fieldWithRole(role FieldRole) (int, bool) {
	for i, f := range s.fields {
		if f.Role == role {
			return i, true
		}
	}
	return 0, false
}

type SchemaBuilder struct {
	schema *Schema
	err    error
}

func NewSchema(name string) *SchemaBuilder {
	return &SchemaBuilder{schema: &Schema{name: name, index: make(map[string]int)}}
}

func (b *SchemaBuilder) add(kind normalizing.FieldKind, role FieldRole, names ...string) *SchemaBuilder {
	for _, name := range names {
		if _, exists := b.schema.index[name]; exists && b.err == nil {
			b.err = fmt.Errorf("schema %s: campo %s duplicado", b.schema.name, name)
			continue
		}
		b.schema.index[name] = len(b.schema.fields)
		b.schema.fields = append(b.schema.fields, Field{Name: name, Kind: kind, Role: role})
	}
	return b
}

// Label é o campo de nome da conta; na linha de totais recebe "TOTAL/AVG".
func (b *SchemaBuilder) Label(name string) *SchemaBuilder {
	return b.add(normalizing.KindPassthrough, RoleLabel, name)
}

func (b *SchemaBuilder) AccountID(name string) *SchemaBuilder {
	return b.add(normalizing.KindPassthrough, RoleAccountID, name)
}

func (b *SchemaBuilder) Identity(names ...string) *SchemaBuilder {
	return b.add(normalizing.KindPassthrough, RoleIdentity, names...)
}

// Group é o campo de agrupamento (pod); na linha de totais recebe a data.
func (b *SchemaBuilder) Group(name string) *SchemaBuilder {
	return b.add(normalizing.KindPassthrough, RoleGroup, name)
}

func (b *SchemaBuilder) Additive(names ...string) *SchemaBuilder {
	return b.add(normalizing.KindNumeric, RoleAdditive, names...)
}

func (b *SchemaBuilder) Rate(names ...string) *SchemaBuilder {
	return b.add(normalizing.KindNumeric, RoleRate, names...)
}

// Metric é numérico mas não tem agregado na linha de totais.
func (b *SchemaBuilder) Metric(names ...string) *SchemaBuilder {
	return b.add(normalizing.KindNumeric, RoleMetric, names...)
}

func (b *SchemaBuilder) Status(names ...string) *SchemaBuilder {
	return b.add(normalizing.KindPassthrough, RoleStatus, names...)
}

// SortBy define a métrica de valor (ordem principal) e a de custo (desempate), ambas decrescentes.
func (b *SchemaBuilder) SortBy(valueKey, costKey string) *SchemaBuilder {
	b.schema.valueKey = valueKey
	b.schema.costKey = costKey
	return b
}

func (b *SchemaBuilder) Build() (*Schema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := b.schema

	for _, key := range []string{s.valueKey, s.costKey} {
		i, ok := s.index[key]
		if !ok {
			return nil, fmt.Errorf("schema %s: chave de ordenação %q não existe", s.name, key)
		}
		if s.fields[i].Kind != normalizing.KindNumeric {
			return nil, fmt.Errorf("schema %s: chave de ordenação %q não é numérica", s.name, key)
		}
	}

	if _, ok := s.fieldWithRole(RoleLabel); !ok {
		return nil, fmt.Errorf("schema %s: campo de nome obrigatório", s.name)
	}

	return s, nil
}

func (b *SchemaBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
