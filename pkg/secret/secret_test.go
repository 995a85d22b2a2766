package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCipher_EncryptDecrypt(t *testing.T) {
	c, err := NewCipher("chave-de-teste")
	require.NoError(t, err)

	encrypted, err := c.Encrypt("token-da-loja")
	require.NoError(t, err)
	assert.NotEqual(t, "token-da-loja", encrypted)

	plaintext, err := c.Decrypt(encrypted)
	require.NoError(t, err)
	assert.Equal(t, "token-da-loja", plaintext)
}

func TestCipher_Decrypt_Falhas(t *testing.T) {
	c, err := NewCipher("chave-de-teste")
	require.NoError(t, err)

	other, err := NewCipher("outra-chave")
	require.NoError(t, err)
	fromOther, err := other.Encrypt("token")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{name: "Base64 inválido", input: "***"},
		{name: "Conteúdo curto", input: "YWJj"},
		{name: "Chave diferente", input: fromOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.input)
			assert.ErrorIs(t, err, ErrDecryption)
		})
	}

	var missing *Cipher
	_, err = missing.Decrypt(fromOther)
	assert.ErrorIs(t, err, ErrDecryption)
}

func TestNewCipher_SemChave(t *testing.T) {
	_, err := NewCipher("")
	assert.ErrorIs(t, err, ErrMissingKey)
}
