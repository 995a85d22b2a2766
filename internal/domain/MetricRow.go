package domain

// RawRow é o retorno de uma integração para uma conta, antes da normalização.
type RawRow struct {
	AccountID string
	Values    map[string]any
	// Codes traz códigos de erro estruturados por campo quando a integração consegue informá-los.
	Codes map[string]string
}

type ErrorRecord struct {
	Field    string `json:"field"`
	Message  string `json:"message"`
	RawValue any    `json:"raw_value"`
	Code     string `json:"code,omitempty"`
}

type ErrorDetail struct {
	Errors     []ErrorRecord `json:"errors"`
	ErrorCount int           `json:"error_count"`
}

// NormalizedRow mantém os campos na ordem do schema da integração.
type NormalizedRow struct {
	AccountID   string
	Values      []FieldValue
	IsError     bool
	ErrorDetail *ErrorDetail
	IsTotal     bool
}

// TotalsLabel identifica a linha sintética de totais; ela nunca é persistida.
const TotalsLabel = "TOTAL/AVG"
