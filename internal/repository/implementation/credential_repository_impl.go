package implementation

import (
	"context"

	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/mapper"
	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/internal/repository/contract"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CredentialRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CredentialMapper
}

func NewCredentialRepository(db *gorm.DB) contract.CredentialRepository {
	return &CredentialRepositoryImpl{
		db:     db,
		mapper: mapper.NewCredentialMapper(),
	}
}

func (r *CredentialRepositoryImpl) Create(ctx context.Context, credential *entity.UserCredential) error {
	m := r.mapper.ToModel(credential)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*credential = *r.mapper.ToEntity(m)
	return nil
}

func (r *CredentialRepositoryImpl) Update(ctx context.Context, credential *entity.UserCredential) error {
	m := r.mapper.ToModel(credential)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*credential = *r.mapper.ToEntity(m)
	return nil
}

func (r *CredentialRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UserCredential{}, id).Error
}

func (r *CredentialRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserCredential, error) {
	return firstMapped(ctx, r.db, r.mapper.ToEntity, specs...)
}

func (r *CredentialRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserCredential, error) {
	return allMapped(ctx, r.db, r.mapper.ToEntities, specs...)
}

func (r *CredentialRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return countRows[model.UserCredential](ctx, r.db, specs...)
}
