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

type HistoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.HistoryMapper
}

func NewHistoryRepository(db *gorm.DB) contract.HistoryRepository {
	return &HistoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewHistoryMapper(),
	}
}

func (r *HistoryRepositoryImpl) Create(ctx context.Context, record *entity.TranslationHistory) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *HistoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TranslationHistory{}, id).Error
}

// DeleteAllByUserId wipes a user's history in one statement; used by
// account deletion.
func (r *HistoryRepositoryImpl) DeleteAllByUserId(ctx context.Context, userId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.TranslationHistory{}).Error
}

func (r *HistoryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.TranslationHistory, error) {
	return firstMapped(ctx, r.db, r.mapper.ToEntity, specs...)
}

func (r *HistoryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.TranslationHistory, error) {
	return allMapped(ctx, r.db, r.mapper.ToEntities, specs...)
}

func (r *HistoryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return countRows[model.TranslationHistory](ctx, r.db, specs...)
}
