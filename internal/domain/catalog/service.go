// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required,min=0"` // In cents
	Stock int    `json:"stock" binding:"min=0"`
}

// UpdateProductRequest represents product update data; nil fields are left unchanged
type UpdateProductRequest struct {
	Name  *string `json:"name,omitempty"`
	Price *int64  `json:"price,omitempty"`
	Stock *int    `json:"stock,omitempty"`
}

// SearchRequest represents catalog search filters
type SearchRequest struct {
	ProductID  *uint  `form:"product_id"`
	SellerID   *uint  `form:"seller_id"`
	Name       string `form:"name"`
	SellerName string `form:"seller_name"`
	OrderBy    string `form:"order_by"` // "rating" orders by review count then average
}

// ProductWithRating is a catalog listing joined with its rating summary
type ProductWithRating struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Price        int64   `json:"price"`
	Stock        int     `json:"stock"`
	SellerID     uint    `json:"seller_id"`
	SellerName   string  `json:"seller_name"`
	AverageStars float64 `json:"average_stars"`
	ReviewCount  int     `json:"review_count"`
}

// CreateProduct creates a product together with its empty rating summary.
// The two inserts share a transaction so no product is ever visible
// without a summary row.
func (s *Service) CreateProduct(sellerID uint, req *CreateProductRequest) (*Product, error) {
	if req.Price < 0 {
		return nil, apperr.Invalid("price must not be negative")
	}
	if req.Stock < 0 {
		return nil, apperr.Invalid("stock must not be negative")
	}

	product := Product{
		Name:     strings.TrimSpace(req.Name),
		Price:    req.Price,
		Stock:    req.Stock,
		SellerID: sellerID,
	}
	if product.Name == "" {
		return nil, apperr.Invalid("product name is required")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		summary := RatingSummary{ProductID: product.ID, AverageStars: 0, ReviewCount: 0}
		if err := tx.Create(&summary).Error; err != nil {
			return fmt.Errorf("failed to create rating summary: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, apperr.Internal("failed to create product", err)
	}

	return &product, nil
}

// UpdateProduct updates a product, matching on both id and owner.
// No matching row means the product is absent or owned by someone else;
// the two cases are deliberately indistinguishable.
func (s *Service) UpdateProduct(productID, sellerID uint, req *UpdateProductRequest) (*Product, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperr.Invalid("product name is required")
		}
		updates["name"] = name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, apperr.Invalid("price must not be negative")
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apperr.Invalid("stock must not be negative")
		}
		updates["stock"] = *req.Stock
	}
	if len(updates) == 0 {
		return nil, apperr.Invalid("no fields to update")
	}

	result := s.db.Model(&Product{}).
		Where("id = ? AND seller_id = ?", productID, sellerID).
		Updates(updates)
	if result.Error != nil {
		return nil, apperr.Internal("failed to update product", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperr.NotFound("product not found or not owned by seller")
	}

	return s.GetProduct(productID)
}

// DeleteProduct removes a product and everything referencing it: reviews,
// the rating summary, orders and cart lines, all in one transaction.
func (s *Service) DeleteProduct(productID, sellerID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND seller_id = ?", productID, sellerID).Delete(&Product{})
		if result.Error != nil {
			return apperr.Internal("failed to delete product", result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("product not found or not owned by seller")
		}

		// Cascades run by table name to keep the catalog package a leaf.
		for _, stmt := range []string{
			"DELETE FROM reviews WHERE product_id = ?",
			"DELETE FROM rating_summaries WHERE product_id = ?",
			"DELETE FROM orders WHERE product_id = ?",
			"DELETE FROM cart_lines WHERE product_id = ?",
		} {
			if err := tx.Exec(stmt, productID).Error; err != nil {
				return apperr.Internal("failed to cascade product delete", err)
			}
		}

		return nil
	})
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(productID uint) (*Product, error) {
	var product Product
	result := s.db.Where("id = ?", productID).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to retrieve product", result.Error)
	}
	return &product, nil
}

// ListProducts retrieves all products
func (s *Service) ListProducts() ([]Product, error) {
	var products []Product
	if err := s.db.Order("id ASC").Find(&products).Error; err != nil {
		return nil, apperr.Internal("failed to list products", err)
	}
	return products, nil
}

// SearchProducts filters the catalog and joins each hit with its rating
// summary and seller name. With order_by=rating, results are sorted by
// review count, then average stars, both descending.
func (s *Service) SearchProducts(req *SearchRequest) ([]ProductWithRating, error) {
	query := s.db.Table("products p").
		Select(`p.id, p.name, p.price, p.stock, p.seller_id,
			u.username AS seller_name,
			COALESCE(rs.average_stars, 0) AS average_stars,
			COALESCE(rs.review_count, 0) AS review_count`).
		Joins("LEFT JOIN rating_summaries rs ON rs.product_id = p.id").
		Joins("LEFT JOIN users u ON u.id = p.seller_id")

	if req.ProductID != nil {
		query = query.Where("p.id = ?", *req.ProductID)
	}
	if req.SellerID != nil {
		query = query.Where("p.seller_id = ?", *req.SellerID)
	}
	if req.Name != "" {
		query = query.Where("LOWER(p.name) LIKE ?", "%"+strings.ToLower(req.Name)+"%")
	}
	if req.SellerName != "" {
		query = query.Where("LOWER(u.username) LIKE ?", "%"+strings.ToLower(req.SellerName)+"%")
	}

	if req.OrderBy == "rating" {
		query = query.Order("review_count DESC, average_stars DESC, p.id ASC")
	} else {
		query = query.Order("p.id ASC")
	}

	var results []ProductWithRating
	if err := query.Scan(&results).Error; err != nil {
		return nil, apperr.Internal("failed to search products", err)
	}
	return results, nil
}

// DecrementStock atomically takes quantity units off a product's stock.
// The conditional update is a single statement, so stock can never go
// negative under concurrent callers. tx may be nil for standalone use.
func (s *Service) DecrementStock(tx *gorm.DB, productID uint, quantity int) error {
	if tx == nil {
		tx = s.db
	}
	if quantity <= 0 {
		return apperr.Invalid("quantity must be positive")
	}

	result := tx.Model(&Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return apperr.Internal("failed to decrement stock", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
			return apperr.Internal("failed to check product", err)
		}
		if count == 0 {
			return apperr.NotFound("product not found")
		}
		return apperr.InsufficientStock("insufficient stock for product %d", productID)
	}

	return nil
}

// IncrementStock returns quantity units to a product's stock
func (s *Service) IncrementStock(tx *gorm.DB, productID uint, quantity int) error {
	if tx == nil {
		tx = s.db
	}
	if quantity <= 0 {
		return apperr.Invalid("quantity must be positive")
	}

	result := tx.Model(&Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return apperr.Internal("failed to increment stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}

	return nil
}
