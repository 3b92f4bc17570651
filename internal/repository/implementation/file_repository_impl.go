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

type FileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FileMapper
}

func NewFileRepository(db *gorm.DB) contract.FileRepository {
	return &FileRepositoryImpl{
		db:     db,
		mapper: mapper.NewFileMapper(),
	}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, file *entity.UserFile) error {
	m := r.mapper.ToModel(file)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*file = *r.mapper.ToEntity(m)
	return nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.UserFile{}, id).Error
}

func (r *FileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserFile, error) {
	return firstMapped(ctx, r.db, r.mapper.ToEntity, specs...)
}

func (r *FileRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserFile, error) {
	return allMapped(ctx, r.db, r.mapper.ToEntities, specs...)
}

func (r *FileRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return countRows[model.UserFile](ctx, r.db, specs...)
}
