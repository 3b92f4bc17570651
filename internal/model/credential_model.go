package model

import (
	"time"

	"github.com/google/uuid"
)

type UserCredential struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_credentials_user_provider,priority:1"`
	Provider     string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_user_credentials_user_provider,priority:2"`
	EncryptedKey string    `gorm:"type:text;not null"`
	IsActive     bool      `gorm:"default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (UserCredential) TableName() string {
	return "user_credentials"
}
