package mapper

import (
	"time"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(e *model.KnowledgeBaseEntry) *entity.KnowledgeBaseEntry {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeBaseEntry{
		Id:              e.Id,
		UserId:          e.UserId,
		SignDescription: e.SignDescription,
		VideoHash:       e.VideoHash,
		ImageHash:       e.ImageHash,
		Translation:     e.Translation,
		Gloss:           e.Gloss,
		Category:        e.Category,
		Confidence:      e.Confidence,
		UsageCount:      e.UsageCount,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       e.DeletedAt.Valid,
	}
}

func (m *KnowledgeMapper) ToModel(e *entity.KnowledgeBaseEntry) *model.KnowledgeBaseEntry {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.KnowledgeBaseEntry{
		Id:              e.Id,
		UserId:          e.UserId,
		SignDescription: e.SignDescription,
		VideoHash:       e.VideoHash,
		ImageHash:       e.ImageHash,
		Translation:     e.Translation,
		Gloss:           e.Gloss,
		Category:        e.Category,
		Confidence:      e.Confidence,
		UsageCount:      e.UsageCount,
		IsActive:        e.IsActive,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *KnowledgeMapper) ToEntities(entries []*model.KnowledgeBaseEntry) []*entity.KnowledgeBaseEntry {
	entities := make([]*entity.KnowledgeBaseEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *KnowledgeMapper) ToModels(entries []*entity.KnowledgeBaseEntry) []*model.KnowledgeBaseEntry {
	models := make([]*model.KnowledgeBaseEntry, len(entries))
	for i, e := range entries {
		models[i] = m.ToModel(e)
	}
	return models
}

// Embedding Mappers

func (m *KnowledgeMapper) EmbeddingToEntity(e *model.KnowledgeEmbedding) *entity.KnowledgeEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	return &entity.KnowledgeEmbedding{
		Id:             e.Id,
		EntryId:        e.EntryId,
		UserId:         e.UserId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *KnowledgeMapper) EmbeddingToModel(e *entity.KnowledgeEmbedding) *model.KnowledgeEmbedding {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.KnowledgeEmbedding{
		Id:             e.Id,
		EntryId:        e.EntryId,
		UserId:         e.UserId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *KnowledgeMapper) EmbeddingToEntities(embeddings []*model.KnowledgeEmbedding) []*entity.KnowledgeEmbedding {
	entities := make([]*entity.KnowledgeEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.EmbeddingToEntity(e)
	}
	return entities
}
