package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProductCache stores one resolved product snapshot per (barcode, user).
// The unique index backs the upsert in the cache repository, so concurrent
// writers for the same key can never leave duplicate live rows.
type ProductCache struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Barcode    string    `gorm:"uniqueIndex:idx_product_caches_barcode_user" json:"barcode"`
	UserID     uuid.UUID `gorm:"uniqueIndex:idx_product_caches_barcode_user" json:"user_id"`
	Snapshot   string    `gorm:"type:text" json:"snapshot"` // ProductInfo as JSON
	Source     string    `json:"source"`
	Confidence float64   `json:"confidence"`
	ExpiresAt  time.Time `gorm:"index" json:"expires_at"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
