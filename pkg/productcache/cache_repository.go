package productcache

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"SmartCart-Backend/entities"
)

type (
	CacheRepository interface {
		GetLatest(ctx context.Context, barcode string, userID string) (*entities.ProductCache, error)
		Upsert(ctx context.Context, entry *entities.ProductCache) error
		Delete(ctx context.Context, barcode string, userID string) error
		DeleteExpired(ctx context.Context, now time.Time) (int64, error)
		CollapseDuplicates(ctx context.Context) (int64, error)
	}

	cacheRepository struct {
		db *gorm.DB
	}
)

func NewCacheRepository(db *gorm.DB) CacheRepository {
	return &cacheRepository{db: db}
}

func (r *cacheRepository) GetLatest(ctx context.Context, barcode string, userID string) (*entities.ProductCache, error) {
	var entry entities.ProductCache
	err := r.db.WithContext(ctx).
		Where("barcode = ? AND user_id = ?", barcode, userID).
		Order("created_at desc").
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Upsert replaces any prior entry for the same (barcode, user). The unique
// index on those columns makes this safe under concurrent writers.
func (r *cacheRepository) Upsert(ctx context.Context, entry *entities.ProductCache) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "barcode"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"snapshot", "source", "confidence", "expires_at", "updated_at",
		}),
	}).Create(entry).Error
}

func (r *cacheRepository) Delete(ctx context.Context, barcode string, userID string) error {
	return r.db.WithContext(ctx).
		Where("barcode = ? AND user_id = ?", barcode, userID).
		Delete(&entities.ProductCache{}).Error
}

func (r *cacheRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&entities.ProductCache{})
	return result.RowsAffected, result.Error
}

// CollapseDuplicates keeps only the most recent row per (barcode, user).
// Rows written before the unique index existed can still be duplicated.
func (r *cacheRepository) CollapseDuplicates(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM product_caches a
		USING product_caches b
		WHERE a.barcode = b.barcode
		  AND a.user_id = b.user_id
		  AND a.created_at < b.created_at`)
	return result.RowsAffected, result.Error
}
