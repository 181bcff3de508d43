// internal/domain/order/entity.go
package order

import (
	"time"
)

// Status represents the order status. The set is closed; UpdateStatus
// rejects labels outside it.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// IsValidStatus reports whether s is a known order status
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Order represents one purchased line. TotalPrice copies the unit price
// at order time; it is a financial record and never changes afterwards.
type Order struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	BuyerID    uint      `gorm:"not null;index" json:"buyer_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPrice int64     `gorm:"not null" json:"total_price"` // In cents
	Status     Status    `gorm:"not null;size:20" json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// IsPaid reports whether the order counts as a completed purchase
func (o *Order) IsPaid() bool {
	return o.Status == StatusPaid
}

// GetFormattedTotal returns total price as a decimal amount
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalPrice) / 100
}
