package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateProfileRequest covers the fields a user may edit directly.
// Email and username are fixed after registration.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
}
