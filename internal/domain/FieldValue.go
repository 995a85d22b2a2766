package domain

import (
	"math"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FieldValue guarda um campo já normalizado: ou um número, ou o texto
// exatamente como veio da integração.
type FieldValue struct {
	number  float64
	raw     string
	numeric bool
}

func NumericValue(v float64) FieldValue {
	return FieldValue{number: v, numeric: true}
}

func UnparsedValue(raw string) FieldValue {
	return FieldValue{raw: raw}
}

func (v FieldValue) IsNumeric() bool {
	return v.numeric
}

// Float retorna o número e se o valor é numérico. NaN e infinitos não contam como numéricos.
func (v FieldValue) Float() (float64, bool) {
	if !v.numeric || math.IsNaN(v.number) || math.IsInf(v.number, 0) {
		return 0, false
	}
	return v.number, true
}

func (v FieldValue) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.raw
}

// Interface devolve float64 ou string, usado em exportações.
func (v FieldValue) Interface() any {
	if n, ok := v.Float(); ok {
		return n
	}
	return v.String()
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch value := raw.(type) {
	case float64:
		*v = NumericValue(value)
	case string:
		*v = UnparsedValue(value)
	case nil:
		*v = UnparsedValue("")
	default:
		*v = UnparsedValue(string(data))
	}
	return nil
}

// FloatPtr converte para ponteiro, nil quando o valor não é numérico.
func (v FieldValue) FloatPtr() *float64 {
	n, ok := v.Float()
	if !ok {
		return nil
	}
	return &n
}
