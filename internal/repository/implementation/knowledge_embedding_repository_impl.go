package implementation

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/mapper"
	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/internal/repository/contract"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type KnowledgeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeEmbeddingRepository(db *gorm.DB) contract.KnowledgeEmbeddingRepository {
	return &KnowledgeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.KnowledgeEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.EmbeddingToEntity(m)
	return nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) Update(ctx context.Context, embedding *entity.KnowledgeEmbedding) error {
	m := r.mapper.EmbeddingToModel(embedding)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.EmbeddingToEntity(m)
	return nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeEmbedding{}, id).Error
}

// DeleteByEntryId removes the embedding belonging to a knowledge entry;
// the worker re-creates it on the next EMBED_KNOWLEDGE_ENTRY message.
func (r *KnowledgeEmbeddingRepositoryImpl) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("entry_id = ?", entryId).Delete(&model.KnowledgeEmbedding{}).Error
}

func (r *KnowledgeEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEmbedding, error) {
	return firstMapped(ctx, r.db, r.mapper.EmbeddingToEntity, specs...)
}

func (r *KnowledgeEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEmbedding, error) {
	return allMapped(ctx, r.db, r.mapper.EmbeddingToEntities, specs...)
}

func (r *KnowledgeEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return countRows[model.KnowledgeEmbedding](ctx, r.db, specs...)
}

// SearchSimilarWithScore returns embeddings with similarity scores, filtered by threshold
func (r *KnowledgeEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, threshold float64) ([]*contract.ScoredKnowledgeEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding_value <=> query_vector) recovers the similarity.
	type result struct {
		model.KnowledgeEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("knowledge_embeddings").
		Select("knowledge_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN knowledge_base_entries ON knowledge_base_entries.id = knowledge_embeddings.entry_id").
		Where("knowledge_embeddings.user_id = ?", userId).
		Where("knowledge_embeddings.deleted_at IS NULL").
		Where("knowledge_base_entries.deleted_at IS NULL").
		Where("knowledge_base_entries.is_active = ?", true).
		Where("1 - (embedding_value <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredKnowledgeEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredKnowledgeEmbedding{
			Embedding:  r.mapper.EmbeddingToEntity(&res.KnowledgeEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
