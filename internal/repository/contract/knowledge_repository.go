package contract

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Create(ctx context.Context, entry *entity.KnowledgeBaseEntry) error
	Update(ctx context.Context, entry *entity.KnowledgeBaseEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeBaseEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeBaseEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// IncrementUsage bumps usage_count atomically so concurrent cache
	// hits on the same entry never lose an update.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}
