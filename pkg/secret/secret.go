package secret

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrDecryption = errors.New("falha ao descriptografar credencial")
	ErrMissingKey = errors.New("chave de criptografia não configurada")
)

// Cipher cifra e decifra tokens de integração guardados no banco.
// Formato: base64(nonce || texto cifrado) com XChaCha20-Poly1305.
type Cipher struct {
	key []byte
}

func NewCipher(passphrase string) (*Cipher, error) {
	if passphrase == "" {
		return nil, ErrMissingKey
	}
	key := sha256.Sum256([]byte(passphrase))
	return &Cipher{key: key[:]}, nil
}

func (c *Cipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("erro ao iniciar cifra: %w", err)
	}

	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plaintext)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("erro ao gerar nonce: %w", err)
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt devolve ErrDecryption para qualquer falha de formato ou autenticação.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, ErrMissingKey)
	}

	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	if len(data) < aead.NonceSize() {
		return "", fmt.Errorf("%w: conteúdo menor que o nonce", ErrDecryption)
	}

	nonce, sealed := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecryption, err)
	}

	return string(plaintext), nil
}
