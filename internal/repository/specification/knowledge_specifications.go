package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByVideoHash struct {
	Hash string
}

func (s ByVideoHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("video_hash = ?", s.Hash)
}

type ByImageHash struct {
	Hash string
}

func (s ByImageHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("image_hash = ?", s.Hash)
}

// ActiveEntries keeps only entries the owner has not disabled.
type ActiveEntries struct{}

func (s ActiveEntries) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type ByEntryID struct {
	EntryID uuid.UUID
}

func (s ByEntryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_id = ?", s.EntryID)
}
