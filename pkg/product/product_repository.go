package product

import (
	"context"

	"gorm.io/gorm"

	"SmartCart-Backend/entities"
)

type (
	ProductRepository interface {
		Create(ctx context.Context, product *entities.SpecificProduct) error
		GetByID(ctx context.Context, id string) (*entities.SpecificProduct, error)
		GetByBarcode(ctx context.Context, barcode string, userID string) (*entities.SpecificProduct, error)
		GetByUser(ctx context.Context, userID string, page, limit int) ([]*entities.SpecificProduct, int64, error)
		GetAllByUser(ctx context.Context, userID string) ([]*entities.SpecificProduct, error)
		Update(ctx context.Context, product *entities.SpecificProduct) error
		Delete(ctx context.Context, id string) error
		CountListItemReferences(ctx context.Context, productID string) (int64, error)
	}

	productRepository struct {
		db *gorm.DB
	}
)

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entities.SpecificProduct) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entities.SpecificProduct, error) {
	var product entities.SpecificProduct
	if err := r.db.WithContext(ctx).
		Preload("GenericProduct").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByBarcode(ctx context.Context, barcode string, userID string) (*entities.SpecificProduct, error) {
	var product entities.SpecificProduct
	if err := r.db.WithContext(ctx).
		Preload("GenericProduct").
		Where("barcode = ? AND user_id = ?", barcode, userID).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByUser(ctx context.Context, userID string, page, limit int) ([]*entities.SpecificProduct, int64, error) {
	var products []*entities.SpecificProduct
	var count int64

	offset := (page - 1) * limit
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if err := query.Model(&entities.SpecificProduct{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("GenericProduct").
		Offset(offset).Limit(limit).
		Order("name asc").
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *productRepository) GetAllByUser(ctx context.Context, userID string) ([]*entities.SpecificProduct, error) {
	var products []*entities.SpecificProduct
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *entities.SpecificProduct) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.SpecificProduct{}).Error
}

// CountListItemReferences backs the referential check that blocks deleting a
// product a shopping list still points at.
func (r *productRepository) CountListItemReferences(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ListItem{}).
		Where("specific_product_id = ?", productID).
		Count(&count).Error
	return count, err
}
