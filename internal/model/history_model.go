package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TranslationHistory struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID      `gorm:"type:uuid;not null;index:idx_history_user_created,priority:1"`
	FileId           *uuid.UUID     `gorm:"type:uuid;index"`
	OperationType    string         `gorm:"type:varchar(50);not null;index"`
	InputText        *string        `gorm:"type:text"`
	OutputText       *string        `gorm:"type:text"`
	OutputGloss      datatypes.JSON `gorm:"type:jsonb"`
	Provider         string         `gorm:"type:varchar(50);not null"`
	Source           string         `gorm:"type:varchar(50)"`
	ProcessingTimeMs int            `gorm:"default:0"`
	CreatedAt        time.Time      `gorm:"autoCreateTime;index:idx_history_user_created,priority:2"`
}

func (TranslationHistory) TableName() string {
	return "translation_history"
}
