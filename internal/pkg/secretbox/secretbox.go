// FILE: internal/pkg/secretbox/secretbox.go
package secretbox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

var (
	ErrInvalidKey         = errors.New("encryption key must be 32 bytes (base64-encoded)")
	ErrCiphertextTooSmall = errors.New("ciphertext shorter than nonce")
)

// Sealer encrypts provider API keys before they touch the database.
// XChaCha20-Poly1305 with a random nonce prepended to the ciphertext,
// everything base64-encoded for a text column.
type Sealer struct {
	key []byte
}

// New builds a Sealer from the base64-encoded 32-byte key in config.
func New(encodedKey string) (*Sealer, error) {
	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKey
	}
	return &Sealer{key: key}, nil
}

func (s *Sealer) Seal(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (s *Sealer) Open(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return "", err
	}

	if len(sealed) < aead.NonceSize() {
		return "", ErrCiphertextTooSmall
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("open ciphertext: %w", err)
	}
	return string(plaintext), nil
}
