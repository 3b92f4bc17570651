package knowledge

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"
)

func TestDecodeMedia(t *testing.T) {
	raw := []byte{0x1A, 0x45, 0xDF, 0xA3, 0x00, 0x01, 0x02}
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		want    []byte
	}{
		{
			name:    "plain base64",
			payload: encoded,
			want:    raw,
		},
		{
			name:    "data URI prefix stripped",
			payload: "data:video/webm;base64," + encoded,
			want:    raw,
		},
		{
			name:    "invalid base64 falls back to raw bytes",
			payload: "not base64!!!",
			want:    []byte("not base64!!!"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeMedia(tt.payload)
			if string(got) != string(tt.want) {
				t.Errorf("DecodeMedia() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHashBytes(t *testing.T) {
	data := []byte("sign clip bytes")
	sum := sha256.Sum256(data)
	want := hex.EncodeToString(sum[:])

	if got := HashBytes(data); got != want {
		t.Errorf("HashBytes() = %s, want %s", got, want)
	}
	if len(HashBytes(data)) != 64 {
		t.Error("hash should be 64 hex chars")
	}
}

// A payload hashed at store time (base64) and the decoded bytes hashed at
// lookup time must produce the same identity, or cache hits would never
// happen.
func TestContentHashAgreesWithHashBytes(t *testing.T) {
	raw := []byte("recorded webm payload")
	encoded := base64.StdEncoding.EncodeToString(raw)

	if ContentHash(encoded) != HashBytes(raw) {
		t.Error("ContentHash(base64) should equal HashBytes(decoded)")
	}
	if ContentHash("data:video/webm;base64,"+encoded) != HashBytes(raw) {
		t.Error("data URI wrapping should not change the hash")
	}
}
