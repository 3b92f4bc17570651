package model

import (
	"time"

	"github.com/google/uuid"
)

type UserFile struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileType  string    `gorm:"type:varchar(20);not null"`
	FileName  string    `gorm:"type:varchar(255);not null"`
	FilePath  string    `gorm:"type:varchar(500);not null"`
	FileSize  int64     `gorm:"not null"`
	MimeType  string    `gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (UserFile) TableName() string {
	return "user_files"
}
