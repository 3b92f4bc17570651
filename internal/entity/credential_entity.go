// FILE: internal/entity/credential_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserCredential is a per-user API key for one translation backend.
// EncryptedKey holds the sealed ciphertext; plaintext keys only exist
// transiently inside the credential service.
type UserCredential struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Provider     string
	EncryptedKey string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
