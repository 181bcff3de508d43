// internal/domain/order/service.go
package order

import (
	"errors"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles the order ledger
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, catalogService *catalog.Service) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalogService,
	}
}

// CreateOrderRequest represents direct single-item order creation
type CreateOrderRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateStatusRequest represents an order status change
type UpdateStatusRequest struct {
	Status Status `json:"status" binding:"required"`
}

// CreateOrder places one order for exactly one product. Stock decrement
// and order insert share a transaction; the whole operation fails or
// succeeds, never partially.
func (s *Service) CreateOrder(buyerID uint, req *CreateOrderRequest) (*Order, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("quantity must be a positive integer")
	}

	var created Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product catalog.Product
		if err := tx.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Internal("failed to load product", err)
		}

		if err := s.catalog.DecrementStock(tx, req.ProductID, req.Quantity); err != nil {
			return err
		}

		created = Order{
			BuyerID:    buyerID,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
			TotalPrice: product.Price * int64(req.Quantity),
			Status:     StatusPaid,
		}
		if err := tx.Create(&created).Error; err != nil {
			return apperr.Internal("failed to create order", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListAll retrieves every order, newest first
func (s *Service) ListAll() ([]Order, error) {
	var orders []Order
	if err := s.db.Order("id DESC").Find(&orders).Error; err != nil {
		return nil, apperr.Internal("failed to list orders", err)
	}
	return orders, nil
}

// ListForBuyer retrieves a buyer's orders, newest first
func (s *Service) ListForBuyer(buyerID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Where("buyer_id = ?", buyerID).Order("id DESC").Find(&orders).Error; err != nil {
		return nil, apperr.Internal("failed to list buyer orders", err)
	}
	return orders, nil
}

// ListForSeller retrieves orders for the seller's products, joining
// through catalog ownership
func (s *Service) ListForSeller(sellerID uint) ([]Order, error) {
	var orders []Order
	err := s.db.
		Joins("JOIN products p ON p.id = orders.product_id").
		Where("p.seller_id = ?", sellerID).
		Order("orders.id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal("failed to list seller orders", err)
	}
	return orders, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(orderID uint) (*Order, error) {
	var o Order
	result := s.db.Where("id = ?", orderID).First(&o)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal("failed to retrieve order", result.Error)
	}
	return &o, nil
}

// UpdateStatus changes an order's status label. TotalPrice is immutable;
// only the status column is touched.
func (s *Service) UpdateStatus(orderID uint, status Status) (*Order, error) {
	if !IsValidStatus(status) {
		return nil, apperr.Invalid("unknown order status: %s", status)
	}

	result := s.db.Model(&Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return nil, apperr.Internal("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("order not found")
	}

	return s.GetOrder(orderID)
}

// DeleteOrder removes an order from the ledger
func (s *Service) DeleteOrder(orderID uint) error {
	result := s.db.Where("id = ?", orderID).Delete(&Order{})
	if result.Error != nil {
		return apperr.Internal("failed to delete order", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("order not found")
	}
	return nil
}

// HasPaidOrder reports whether the buyer has at least one paid order for
// the product. Used by the review subsystem as its purchase gate.
func (s *Service) HasPaidOrder(buyerID, productID uint) (bool, error) {
	var count int64
	err := s.db.Model(&Order{}).
		Where("buyer_id = ? AND product_id = ? AND status = ?", buyerID, productID, StatusPaid).
		Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check purchases", err)
	}
	return count > 0, nil
}
