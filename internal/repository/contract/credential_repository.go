package contract

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
)

type CredentialRepository interface {
	Create(ctx context.Context, credential *entity.UserCredential) error
	Update(ctx context.Context, credential *entity.UserCredential) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserCredential, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserCredential, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
