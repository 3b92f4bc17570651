// FILE: internal/dto/credential_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// SaveCredentialRequest carries a provider API key supplied by the user.
// The key is encrypted before it reaches the database and is never echoed back.
type SaveCredentialRequest struct {
	Provider string `json:"provider" validate:"required,oneof=openai gemini-pro gemini-flash"`
	ApiKey   string `json:"api_key" validate:"required,min=8"`
}

type CredentialResponse struct {
	Id        uuid.UUID `json:"id"`
	Provider  string    `json:"provider"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CredentialListResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
}
