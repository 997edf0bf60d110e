package domain

import (
	"time"
)

// Product is the locally persisted projection of an upstream catalog product.
// It exists so favorites can reference a stable local key; price and rating
// are never stored and always re-fetched live.
type Product struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ExternalID uint      `json:"external_id" gorm:"uniqueIndex;not null"`
	Title      string    `json:"title" gorm:"not null"`
	Image      string    `json:"image"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductRepository defines the contract for the product mirror store
type ProductRepository interface {
	FindByID(id uint) (*Product, error)
	FindByExternalID(externalID uint) (*Product, error)
	// Upsert creates or refreshes the mirror row keyed on externalID.
	// Safe under concurrent calls for the same externalID.
	Upsert(externalID uint, title, image string) (*Product, error)
}
