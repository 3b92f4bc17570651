package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeBaseEntry struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID      `gorm:"type:uuid;not null;index"`
	SignDescription *string        `gorm:"type:text"`
	VideoHash       *string        `gorm:"type:varchar(64);index"`
	ImageHash       *string        `gorm:"type:varchar(64);index"`
	Translation     string         `gorm:"type:text;not null"`
	Gloss           *string        `gorm:"type:text"`
	Category        *string        `gorm:"type:varchar(100)"`
	Confidence      int            `gorm:"default:100"`
	UsageCount      int            `gorm:"default:0"`
	IsActive        bool           `gorm:"default:true"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (KnowledgeBaseEntry) TableName() string {
	return "knowledge_base_entries"
}

type KnowledgeEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryId        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	UserId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // Gemini text-embedding-004 uses 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime"`
	DeletedAt      gorm.DeletedAt  `gorm:"index"`
}

func (KnowledgeEmbedding) TableName() string {
	return "knowledge_embeddings"
}
