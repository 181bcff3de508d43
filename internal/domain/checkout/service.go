// internal/domain/checkout/service.go
package checkout

import (
	"errors"
	"fmt"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Failure reasons reported per line
const (
	ReasonInsufficientStock = "insufficient_stock"
	ReasonProcessingError   = "processing_error"
)

// Service converts a user's cart into orders. Each cart line is one
// atomic unit: order insert, stock decrement and line removal commit or
// roll back together, and one line's failure never aborts the rest.
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
	cart    *cart.Service
}

// NewService creates a new checkout service
func NewService(db *gorm.DB, cfg *config.Config, catalogService *catalog.Service, cartService *cart.Service) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalogService,
		cart:    cartService,
	}
}

// PurchasedLine describes one successfully checked-out cart line
type PurchasedLine struct {
	OrderID    uint  `json:"order_id"`
	ProductID  uint  `json:"product_id"`
	Quantity   int   `json:"quantity"`
	TotalPrice int64 `json:"total_price"`
}

// FailedLine describes one cart line that could not be checked out
type FailedLine struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// Result is the outcome of a checkout call. Partial success is a normal
// outcome, not an error.
type Result struct {
	Successful []PurchasedLine `json:"successful"`
	Failed     []FailedLine    `json:"failed"`
}

// Checkout processes the user's cart lines in insertion order. Stock is
// re-validated against the live catalog per line via the atomic
// conditional decrement; successful lines persist even when later lines
// fail, and an all-failed checkout leaves the store untouched.
func (s *Service) Checkout(userID uint) (*Result, error) {
	lines, err := s.cart.Lines(userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, apperr.Invalid("cart is empty")
	}

	result := &Result{
		Successful: []PurchasedLine{},
		Failed:     []FailedLine{},
	}

	for _, line := range lines {
		purchased, err := s.checkoutLine(userID, line)
		if err != nil {
			result.Failed = append(result.Failed, FailedLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Reason:    failureReason(err),
			})
			continue
		}
		result.Successful = append(result.Successful, *purchased)
	}

	return result, nil
}

// checkoutLine runs the three effects of one cart line in one transaction
func (s *Service) checkoutLine(userID uint, line cart.Line) (*PurchasedLine, error) {
	var purchased PurchasedLine

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product catalog.Product
		if err := tx.Where("id = ?", line.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return fmt.Errorf("failed to load product: %w", err)
		}

		if err := s.catalog.DecrementStock(tx, line.ProductID, line.Quantity); err != nil {
			return err
		}

		o := order.Order{
			BuyerID:    userID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			TotalPrice: product.Price * int64(line.Quantity),
			Status:     order.StatusPaid,
		}
		if err := tx.Create(&o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		deleted := tx.Where("id = ?", line.ID).Delete(&cart.Line{})
		if deleted.Error != nil {
			return fmt.Errorf("failed to clear cart line: %w", deleted.Error)
		}
		if deleted.RowsAffected == 0 {
			// The line vanished mid-checkout; treat as already processed.
			return fmt.Errorf("cart line %d no longer exists", line.ID)
		}

		purchased = PurchasedLine{
			OrderID:    o.ID,
			ProductID:  o.ProductID,
			Quantity:   o.Quantity,
			TotalPrice: o.TotalPrice,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &purchased, nil
}

func failureReason(err error) string {
	if apperr.Is(err, apperr.CodeInsufficientStock) {
		return ReasonInsufficientStock
	}
	return ReasonProcessingError
}
