package entities

import (
	"time"

	"github.com/google/uuid"
)

// GenericProduct is a category of goods ("Arroz"), not a purchasable item.
// Default products are seeded by the system and have no owner; the rest
// belong to a user.
type GenericProduct struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	IsDefault bool       `json:"is_default"`

	User             *User              `gorm:"foreignKey:UserID"`
	SpecificProducts []*SpecificProduct `gorm:"foreignKey:GenericProductID"`
	Timestamp
}

// SpecificProduct is a concrete, brand/barcode-identified product linked to a
// generic product. Barcode is unique per owner.
type SpecificProduct struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID `gorm:"uniqueIndex:idx_specific_products_user_barcode" json:"user_id"`
	GenericProductID uuid.UUID `json:"generic_product_id"`
	Name             string    `json:"name"`
	Brand            string    `json:"brand,omitempty"`
	Barcode          string    `gorm:"uniqueIndex:idx_specific_products_user_barcode" json:"barcode"`
	BarcodeFormat    string    `json:"barcode_format,omitempty"` // "EAN13", "EAN8", "UPCA", "QRCODE"
	DefaultUnit      string    `json:"default_unit,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	ExternalID       string    `json:"external_id,omitempty"`
	DataSource       string    `json:"data_source"` // "local", "cosmos", "openfoodfacts", "manual"
	Confidence       float64   `json:"confidence"`
	LastExternalSync time.Time `json:"last_external_sync,omitempty"`

	User           *User           `gorm:"foreignKey:UserID"`
	GenericProduct *GenericProduct `gorm:"foreignKey:GenericProductID"`
	Timestamp
}
