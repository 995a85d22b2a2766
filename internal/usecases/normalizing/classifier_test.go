package normalizing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := DefaultClassifier()

	tests := []struct {
		name       string
		candidates []Candidate
		wantCount  int
		wantFields []string
		wantCodes  []string
	}{
		{
			name:       "Token expirado gera registro no campo de origem",
			candidates: []Candidate{{Field: "spend", Value: "Your access token has expired"}},
			wantCount:  1,
			wantFields: []string{"spend"},
			wantCodes:  []string{"token_expired"},
		},
		{
			name:       "Número formatado não gera registro",
			candidates: []Candidate{{Field: "revenue", Value: "4,200"}},
			wantCount:  0,
		},
		{
			name: "Falha em dois campos conta dois erros",
			candidates: []Candidate{
				{Field: "spend", Value: "Missing Permissions"},
				{Field: "revenue", Value: "Missing Permissions"},
			},
			wantCount:  2,
			wantFields: []string{"spend", "revenue"},
			wantCodes:  []string{"permission_denied", "permission_denied"},
		},
		{
			name:       "Não foi possível recuperar",
			candidates: []Candidate{{Field: "spend", Value: "Could not retrieve"}},
			wantCount:  1,
			wantFields: []string{"spend"},
			wantCodes:  []string{"fetch_failed"},
		},
		{
			name:       "Falha de descriptografia",
			candidates: []Candidate{{Field: "revenue", Value: "Decryption failed"}},
			wantCount:  1,
			wantFields: []string{"revenue"},
			wantCodes:  []string{"decryption_failed"},
		},
		{
			name:       "Casa sem diferenciar maiúsculas",
			candidates: []Candidate{{Field: "orders", Value: "NO DATA FOR PERIOD"}},
			wantCount:  1,
			wantFields: []string{"orders"},
			wantCodes:  []string{"no_data"},
		},
		{
			name:       "Código estruturado tem precedência sobre o texto",
			candidates: []Candidate{{Field: "spend", Value: "Conta desativada", Code: "account_disabled"}},
			wantCount:  1,
			wantFields: []string{"spend"},
			wantCodes:  []string{"account_disabled"},
		},
		{
			name:       "Texto desconhecido não é erro",
			candidates: []Candidate{{Field: "status", Value: "ACTIVE"}},
			wantCount:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := classifier.Classify(tt.candidates)

			if tt.wantCount == 0 {
				assert.Nil(t, detail)
				return
			}

			require.NotNil(t, detail)
			assert.Equal(t, tt.wantCount, detail.ErrorCount)
			assert.Len(t, detail.Errors, tt.wantCount)
			for i, record := range detail.Errors {
				assert.Equal(t, tt.wantFields[i], record.Field)
				assert.Equal(t, tt.wantCodes[i], record.Code)
				assert.Equal(t, tt.candidates[i].Value, record.RawValue)
			}
		})
	}
}

func TestLoadSignatures(t *testing.T) {
	t.Run("Arquivo válido", func(t *testing.T) {
		c, err := LoadSignatures([]byte(`
version: "test"
signatures:
  - name: quota
    pattern: 'quota exceeded'
    code: quota
`))
		require.NoError(t, err)
		assert.Equal(t, "test", c.Version())

		sig, ok := c.Match("Daily Quota Exceeded")
		assert.True(t, ok)
		assert.Equal(t, "quota", sig.Code)
	})

	t.Run("Lista vazia", func(t *testing.T) {
		_, err := LoadSignatures([]byte(`version: "x"`))
		assert.ErrorIs(t, err, ErrNoSignatures)
	})

	t.Run("Expressão inválida", func(t *testing.T) {
		_, err := LoadSignatures([]byte(`
signatures:
  - name: broken
    pattern: '(['
`))
		assert.Error(t, err)
	})

	t.Run("Arquivo externo", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signatures.yaml")
		require.NoError(t, os.WriteFile(path, []byte("signatures:\n  - name: x\n    pattern: 'boom'\n    code: x\n"), 0o600))

		c, err := NewClassifier(path)
		require.NoError(t, err)

		_, ok := c.Match("boom")
		assert.True(t, ok)
	})

	t.Run("Assinaturas embutidas", func(t *testing.T) {
		c, err := NewClassifier("")
		require.NoError(t, err)
		assert.NotEmpty(t, c.Version())
	})
}
