// internal/domain/cart/service.go
package cart

import (
	"errors"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles cart business logic. Stock checks here are advisory,
// made against a snapshot; the checkout engine re-validates against live
// stock and is the final authority.
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config, catalogService *catalog.Service) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalogService,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// SetQuantityRequest represents a quantity overwrite request
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// AddToCart adds quantity to the user's line for a product, creating the
// line when absent. The cumulative quantity is checked against current
// stock.
func (s *Service) AddToCart(userID uint, req *AddToCartRequest) (*Line, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("quantity must be a positive integer")
	}

	product, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		return nil, err
	}

	var line Line
	result := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&line)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		if req.Quantity > product.Stock {
			return nil, apperr.InsufficientStock("requested %d, only %d in stock", req.Quantity, product.Stock)
		}
		line = Line{
			UserID:    userID,
			ProductID: req.ProductID,
			Quantity:  req.Quantity,
		}
		if err := s.db.Create(&line).Error; err != nil {
			return nil, apperr.Internal("failed to create cart line", err)
		}
		return &line, nil
	}
	if result.Error != nil {
		return nil, apperr.Internal("failed to read cart line", result.Error)
	}

	newQuantity := line.Quantity + req.Quantity
	if newQuantity > product.Stock {
		return nil, apperr.InsufficientStock("cart would hold %d, only %d in stock", newQuantity, product.Stock)
	}

	line.Quantity = newQuantity
	if err := s.db.Save(&line).Error; err != nil {
		return nil, apperr.Internal("failed to update cart line", err)
	}
	return &line, nil
}

// SetQuantity overwrites the quantity of an existing cart line
func (s *Service) SetQuantity(userID, productID uint, quantity int) (*Line, error) {
	if quantity <= 0 {
		return nil, apperr.Invalid("quantity must be a positive integer")
	}

	var line Line
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&line)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("cart line not found")
	}
	if result.Error != nil {
		return nil, apperr.Internal("failed to read cart line", result.Error)
	}

	product, err := s.catalog.GetProduct(productID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, apperr.InsufficientStock("requested %d, only %d in stock", quantity, product.Stock)
	}

	line.Quantity = quantity
	if err := s.db.Save(&line).Error; err != nil {
		return nil, apperr.Internal("failed to update cart line", err)
	}
	return &line, nil
}

// RemoveFromCart deletes the user's line for a product
func (s *Service) RemoveFromCart(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&Line{})
	if result.Error != nil {
		return apperr.Internal("failed to remove cart line", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("cart line not found")
	}
	return nil
}

// ViewCart returns the user's cart joined with live catalog data, in
// insertion order. Read-only.
func (s *Service) ViewCart(userID uint) ([]LineView, error) {
	var views []LineView
	err := s.db.Table("cart_lines c").
		Select(`c.product_id, p.name, c.quantity, p.price AS unit_price,
			c.quantity * p.price AS line_total`).
		Joins("JOIN products p ON p.id = c.product_id").
		Where("c.user_id = ?", userID).
		Order("c.id ASC").
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Internal("failed to view cart", err)
	}
	return views, nil
}

// Lines returns the raw cart lines for a user in insertion order
func (s *Service) Lines(userID uint) ([]Line, error) {
	var lines []Line
	if err := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&lines).Error; err != nil {
		return nil, apperr.Internal("failed to list cart lines", err)
	}
	return lines, nil
}
