package contract

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
)

type HistoryRepository interface {
	Create(ctx context.Context, record *entity.TranslationHistory) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TranslationHistory, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranslationHistory, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
