package entities

import (
	"github.com/google/uuid"
)

type ShoppingList struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`

	User  *User       `gorm:"foreignKey:UserID"`
	Items []*ListItem `gorm:"foreignKey:ShoppingListID"`
	Timestamp
}

// ListItem references a generic product and optionally the specific product
// the user picked for it. Specific products cannot be deleted while a list
// item still points at them.
type ListItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	ShoppingListID    uuid.UUID  `json:"shopping_list_id"`
	UserID            uuid.UUID  `json:"user_id"`
	GenericProductID  uuid.UUID  `json:"generic_product_id"`
	SpecificProductID *uuid.UUID `json:"specific_product_id,omitempty"`
	Quantity          float64    `json:"quantity"`
	Unit              string     `json:"unit,omitempty"`
	IsChecked         bool       `json:"is_checked"`

	ShoppingList    *ShoppingList    `gorm:"foreignKey:ShoppingListID"`
	GenericProduct  *GenericProduct  `gorm:"foreignKey:GenericProductID"`
	SpecificProduct *SpecificProduct `gorm:"foreignKey:SpecificProductID"`
	Timestamp
}
