package genericproduct

import (
	"context"

	"gorm.io/gorm"

	"SmartCart-Backend/entities"
)

type (
	GenericRepository interface {
		Create(ctx context.Context, product *entities.GenericProduct) error
		GetByID(ctx context.Context, id string) (*entities.GenericProduct, error)
		GetForUser(ctx context.Context, userID string) ([]*entities.GenericProduct, error)
		Delete(ctx context.Context, id string) error
	}

	genericRepository struct {
		db *gorm.DB
	}
)

func NewGenericRepository(db *gorm.DB) GenericRepository {
	return &genericRepository{db: db}
}

func (r *genericRepository) Create(ctx context.Context, product *entities.GenericProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *genericRepository) GetByID(ctx context.Context, id string) (*entities.GenericProduct, error) {
	var product entities.GenericProduct
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetForUser returns the user's own generic products plus the seeded
// defaults, which every user can match against.
func (r *genericRepository) GetForUser(ctx context.Context, userID string) ([]*entities.GenericProduct, error) {
	var products []*entities.GenericProduct
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR is_default = ?", userID, true).
		Order("name asc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *genericRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.GenericProduct{}).Error
}
