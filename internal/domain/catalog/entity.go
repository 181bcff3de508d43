// internal/domain/catalog/entity.go
package catalog

import (
	"time"
)

// Product represents a catalog product owned by one seller
type Product struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Price     int64     `gorm:"not null" json:"price"` // Price in cents
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RatingSummary is the derived per-product review aggregate.
// Exactly one row exists per product; it is created with the product
// and removed with it.
type RatingSummary struct {
	ProductID    uint      `gorm:"primaryKey" json:"product_id"`
	AverageStars float64   `gorm:"not null;default:0" json:"average_stars"`
	ReviewCount  int       `gorm:"not null;default:0" json:"review_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string       { return "products" }
func (RatingSummary) TableName() string { return "rating_summaries" }

// IsLowStock reports whether stock is below the given threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}
