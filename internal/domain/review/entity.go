// internal/domain/review/entity.go
package review

import (
	"time"
)

// Review represents one user's verdict on one product. The unique index
// guarantees at most one row per (user, product) pair; repeat submissions
// overwrite in place.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_user_product" json:"product_id"`
	Stars     int       `gorm:"not null" json:"stars"`
	Comment   string    `gorm:"size:2000" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

// View is a review joined with reviewer and product names
type View struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	ProductID   uint      `json:"product_id"`
	ProductName string    `json:"product_name"`
	Stars       int       `json:"stars"`
	Comment     string    `json:"comment"`
	UpdatedAt   time.Time `json:"updated_at"`
}
