// Package knowledge implements content addressing for the per-user sign
// knowledge base. Payloads are identified by the SHA-256 of their decoded
// bytes so the same clip matches regardless of how the client encoded or
// wrapped it.
package knowledge

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// DecodeMedia normalizes a base64 payload to raw bytes. Data-URI
// prefixes ("data:video/webm;base64,...") are stripped before decoding.
// When the payload is not valid base64 the raw string bytes are returned
// instead, so a malformed submission still gets a stable identity rather
// than an error.
func DecodeMedia(payload string) []byte {
	data := payload
	if idx := strings.Index(data, ","); idx >= 0 {
		data = data[idx+1:]
	}

	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return []byte(payload)
	}
	return decoded
}

// ContentHash fingerprints a base64 payload. Defined as
// HashBytes(DecodeMedia(payload)) so a payload hashed at store time and
// its decoded bytes hashed at lookup time always agree.
func ContentHash(payload string) string {
	return HashBytes(DecodeMedia(payload))
}

// HashBytes fingerprints raw media bytes.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
