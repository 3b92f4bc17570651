package contract

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
)

type FileRepository interface {
	Create(ctx context.Context, file *entity.UserFile) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserFile, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserFile, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
