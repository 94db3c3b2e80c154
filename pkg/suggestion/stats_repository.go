package suggestion

import (
	"context"
	"time"

	"gorm.io/gorm"

	"SmartCart-Backend/entities"
)

type (
	// StatsRepository aggregates the shopping history a ranking needs:
	// per-generic usage counts, recency, dominant categories and the raw
	// names the user has recorded before.
	StatsRepository interface {
		GetUsageCounts(ctx context.Context, userID string) (map[string]int64, error)
		GetUsedSince(ctx context.Context, userID string, since time.Time) (map[string]bool, error)
		GetTopCategories(ctx context.Context, userID string, limit int) ([]string, error)
		GetHistoricalNames(ctx context.Context, userID string) ([]string, error)
		GetGenericsWithBrand(ctx context.Context, userID string, brand string) ([]*entities.GenericProduct, error)
	}

	statsRepository struct {
		db *gorm.DB
	}

	usageRow struct {
		GenericProductID string
		Count            int64
	}

	categoryRow struct {
		Category string
		Count    int64
	}
)

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) GetUsageCounts(ctx context.Context, userID string) (map[string]int64, error) {
	var rows []usageRow
	err := r.db.WithContext(ctx).
		Model(&entities.ListItem{}).
		Select("generic_product_id, count(*) as count").
		Where("user_id = ?", userID).
		Group("generic_product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.GenericProductID] = row.Count
	}
	return counts, nil
}

func (r *statsRepository) GetUsedSince(ctx context.Context, userID string, since time.Time) (map[string]bool, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entities.ListItem{}).
		Distinct("generic_product_id").
		Where("user_id = ? AND created_at >= ?", userID, since).
		Pluck("generic_product_id", &ids).Error
	if err != nil {
		return nil, err
	}

	used := make(map[string]bool, len(ids))
	for _, id := range ids {
		used[id] = true
	}
	return used, nil
}

func (r *statsRepository) GetTopCategories(ctx context.Context, userID string, limit int) ([]string, error) {
	var rows []categoryRow
	err := r.db.WithContext(ctx).
		Model(&entities.ListItem{}).
		Select("generic_products.category as category, count(*) as count").
		Joins("JOIN generic_products ON generic_products.id = list_items.generic_product_id").
		Where("list_items.user_id = ? AND generic_products.category <> ''", userID).
		Group("generic_products.category").
		Order("count desc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	categories := make([]string, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, row.Category)
	}
	return categories, nil
}

func (r *statsRepository) GetHistoricalNames(ctx context.Context, userID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&entities.SpecificProduct{}).
		Where("user_id = ?", userID).
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// GetGenericsWithBrand returns the generic products that already have a
// specific product of the given brand for this user.
func (r *statsRepository) GetGenericsWithBrand(ctx context.Context, userID string, brand string) ([]*entities.GenericProduct, error) {
	var products []*entities.GenericProduct
	err := r.db.WithContext(ctx).
		Model(&entities.GenericProduct{}).
		Distinct("generic_products.*").
		Joins("JOIN specific_products ON specific_products.generic_product_id = generic_products.id").
		Where("specific_products.user_id = ? AND lower(specific_products.brand) = lower(?)", userID, brand).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
