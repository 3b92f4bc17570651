package implementation

import (
	"context"
	"errors"

	"github.com/Tarunsai01/ARIA/internal/repository/specification"

	"gorm.io/gorm"
)

// applySpecs chains query specifications onto a GORM handle.
func applySpecs(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// firstMapped loads the first row matching specs and maps it to its entity,
// flattening gorm.ErrRecordNotFound to (nil, nil).
func firstMapped[M any, E any](ctx context.Context, db *gorm.DB, toEntity func(*M) *E, specs ...specification.Specification) (*E, error) {
	var m M
	if err := applySpecs(db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return toEntity(&m), nil
}

// allMapped loads every row matching specs and maps the batch.
func allMapped[M any, E any](ctx context.Context, db *gorm.DB, toEntities func([]*M) []*E, specs ...specification.Specification) ([]*E, error) {
	var models []*M
	if err := applySpecs(db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return toEntities(models), nil
}

// countRows counts rows of model M matching specs.
func countRows[M any](ctx context.Context, db *gorm.DB, specs ...specification.Specification) (int64, error) {
	var m M
	var count int64
	if err := applySpecs(db.WithContext(ctx).Model(&m), specs...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
