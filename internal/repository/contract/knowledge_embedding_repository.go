package contract

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredKnowledgeEmbedding wraps KnowledgeEmbedding with its similarity score
type ScoredKnowledgeEmbedding struct {
	Embedding  *entity.KnowledgeEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type KnowledgeEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.KnowledgeEmbedding) error
	Update(ctx context.Context, embedding *entity.KnowledgeEmbedding) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore returns embeddings with similarity scores,
	// filtered by threshold, scoped to one user's knowledge base.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, userId uuid.UUID, threshold float64) ([]*ScoredKnowledgeEmbedding, error)
}
