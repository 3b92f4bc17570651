package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByOperationType struct {
	OperationType string
}

func (s ByOperationType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("operation_type = ?", s.OperationType)
}

type ByProvider struct {
	Provider string
}

func (s ByProvider) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("provider = ?", s.Provider)
}

type ByFileID struct {
	FileID uuid.UUID
}

func (s ByFileID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_id = ?", s.FileID)
}

type ByFileType struct {
	FileType string
}

func (s ByFileType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_type = ?", s.FileType)
}

type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}
