// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// ProductType represents the product category
type ProductType string

const (
	ProductTypeVegetable ProductType = "vegetable"
	ProductTypeFruit     ProductType = "fruit"
)

// Valid reports whether the type is one of the known values
func (t ProductType) Valid() bool {
	return t == ProductTypeVegetable || t == ProductTypeFruit
}

// Product represents a catalog product
type Product struct {
	ID   uint        `gorm:"primaryKey" json:"id"`
	Name string      `gorm:"not null;size:255" json:"name"`
	Type ProductType `gorm:"not null;size:20;index" json:"type"`

	// Base price in cents. The effective price is computed at read time,
	// never persisted: when stock falls to or below the threshold the
	// product sells at double the base price.
	Price     int64 `gorm:"not null" json:"price"`
	Stock     int   `gorm:"not null;default:0" json:"stock"`
	Threshold int   `gorm:"not null;default:5" json:"threshold"`

	ImageURL string `gorm:"size:500" json:"image_url"`

	// Products are deactivated, not deleted, so historical order lines
	// keep a valid reference.
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// CurrentPrice returns the effective unit price including the scarcity
// surcharge
func (p *Product) CurrentPrice() int64 {
	if p.Stock <= p.Threshold {
		return 2 * p.Price
	}
	return p.Price
}

// IsLowStock reports whether the scarcity surcharge applies
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.Threshold
}
