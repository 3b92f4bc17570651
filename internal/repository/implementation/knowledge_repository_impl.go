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

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) Create(ctx context.Context, entry *entity.KnowledgeBaseEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) Update(ctx context.Context, entry *entity.KnowledgeBaseEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.KnowledgeBaseEntry{}, id).Error
}

func (r *KnowledgeRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeBaseEntry, error) {
	return firstMapped(ctx, r.db, r.mapper.ToEntity, specs...)
}

func (r *KnowledgeRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeBaseEntry, error) {
	return allMapped(ctx, r.db, r.mapper.ToEntities, specs...)
}

func (r *KnowledgeRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return countRows[model.KnowledgeBaseEntry](ctx, r.db, specs...)
}

// IncrementUsage bumps the hit counter without touching updated_at, so
// cache hits do not look like content edits.
func (r *KnowledgeRepositoryImpl) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.KnowledgeBaseEntry{}).
		Where("id = ?", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + ?", 1)).Error
}
