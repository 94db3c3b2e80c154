package entities

import (
	"github.com/google/uuid"
)

// Category is the internal category vocabulary ("graos", "laticinios", ...).
// External catalog categories are mapped onto these slugs by the adapters.
type Category struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Slug string    `gorm:"uniqueIndex" json:"slug"`
	Name string    `json:"name"`

	Timestamp
}
