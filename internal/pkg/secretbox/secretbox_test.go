package secretbox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testKey() string {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return base64.StdEncoding.EncodeToString(key)
}

func TestSealOpenRoundtrip(t *testing.T) {
	sealer, err := New(testKey())
	assert.NoError(t, err)

	sealed, err := sealer.Seal("sk-super-secret-api-key")
	assert.NoError(t, err)
	assert.NotEqual(t, "sk-super-secret-api-key", sealed)

	opened, err := sealer.Open(sealed)
	assert.NoError(t, err)
	assert.Equal(t, "sk-super-secret-api-key", opened)
}

func TestSealIsNonDeterministic(t *testing.T) {
	sealer, _ := New(testKey())

	a, err := sealer.Seal("same plaintext")
	assert.NoError(t, err)
	b, err := sealer.Seal("same plaintext")
	assert.NoError(t, err)

	// Random nonces mean two seals of the same key never collide.
	assert.NotEqual(t, a, b)
}

func TestNewRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"wrong length", base64.StdEncoding.EncodeToString([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	sealer, _ := New(testKey())

	_, err := sealer.Open("%%% not base64 %%%")
	assert.Error(t, err)

	// Valid base64 but shorter than a nonce.
	_, err = sealer.Open(base64.StdEncoding.EncodeToString([]byte("tiny")))
	assert.ErrorIs(t, err, ErrCiphertextTooSmall)
}

func TestOpenFailsWithWrongKey(t *testing.T) {
	sealer, _ := New(testKey())
	sealed, err := sealer.Seal("plaintext")
	assert.NoError(t, err)

	otherKey := make([]byte, 32)
	for i := range otherKey {
		otherKey[i] = byte(255 - i)
	}
	other, err := New(base64.StdEncoding.EncodeToString(otherKey))
	assert.NoError(t, err)

	_, err = other.Open(sealed)
	assert.Error(t, err, "authentication must fail under a different key")
}

func TestOpenDetectsTampering(t *testing.T) {
	sealer, _ := New(testKey())
	sealed, err := sealer.Seal("plaintext")
	assert.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	assert.NoError(t, err)
	raw[len(raw)-1] ^= 0x01

	_, err = sealer.Open(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}
