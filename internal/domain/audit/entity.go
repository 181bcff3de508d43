// internal/domain/audit/entity.go
package audit

import (
	"time"
)

// Action labels for recorded events
const (
	ActionRegister      = "user.register"
	ActionLogin         = "user.login"
	ActionProductCreate = "product.create"
	ActionProductUpdate = "product.update"
	ActionProductDelete = "product.delete"
	ActionCartAdd       = "cart.add"
	ActionCartUpdate    = "cart.update"
	ActionCartRemove    = "cart.remove"
	ActionCheckout      = "cart.checkout"
	ActionOrderCreate   = "order.create"
	ActionOrderUpdate   = "order.update"
	ActionOrderDelete   = "order.delete"
	ActionReviewSubmit  = "review.submit"
	ActionReviewDelete  = "review.delete"
)

// Entry is one audit log row. UserID is nullable so events survive the
// deletion of the account that caused them.
type Entry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	Action      string    `gorm:"not null;size:64;index" json:"action"`
	Description string    `gorm:"size:512" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Entry) TableName() string {
	return "audit_logs"
}

// EntryView is an audit entry joined with the acting username
type EntryView struct {
	ID          uint      `json:"id"`
	UserID      *uint     `json:"user_id"`
	Username    string    `json:"username"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
