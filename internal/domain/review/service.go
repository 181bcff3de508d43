// internal/domain/review/service.go
package review

import (
	"errors"
	"fmt"
	"math"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service handles review submission and rating aggregation. Every
// mutation recomputes the product's rating summary inside the same
// transaction, so readers never observe a summary that disagrees with
// the review rows.
type Service struct {
	db      *gorm.DB
	config  *config.Config
	catalog *catalog.Service
	orders  *order.Service
}

// NewService creates a new review service
func NewService(db *gorm.DB, cfg *config.Config, catalogService *catalog.Service, orderService *order.Service) *Service {
	return &Service{
		db:      db,
		config:  cfg,
		catalog: catalogService,
		orders:  orderService,
	}
}

// SubmitReviewRequest represents a review submission
type SubmitReviewRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Stars     int    `json:"stars" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

// AddOrUpdate submits a review, overwriting the user's previous review
// of the same product if one exists. The caller must have a paid order
// for the product.
func (s *Service) AddOrUpdate(userID uint, req *SubmitReviewRequest) (*Review, error) {
	if req.Stars < 1 || req.Stars > 5 {
		return nil, apperr.Invalid("stars must be between 1 and 5")
	}

	if _, err := s.catalog.GetProduct(req.ProductID); err != nil {
		return nil, err
	}

	purchased, err := s.orders.HasPaidOrder(userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !purchased {
		return nil, apperr.Forbidden("reviews require a completed purchase of the product")
	}

	rv := Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Stars:     req.Stars,
		Comment:   req.Comment,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Concurrent submissions by the same user converge on one row.
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"stars", "comment", "updated_at"}),
		}).Create(&rv)
		if result.Error != nil {
			return fmt.Errorf("failed to save review: %w", result.Error)
		}

		return s.Recompute(tx, req.ProductID)
	})
	if err != nil {
		return nil, apperr.Internal("failed to submit review", err)
	}

	if err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&rv).Error; err != nil {
		return nil, apperr.Internal("failed to reload review", err)
	}
	return &rv, nil
}

// Delete removes a review. Buyers may delete their own reviews; admins
// may delete any.
func (s *Service) Delete(actor auth.Actor, reviewID uint) error {
	var rv Review
	result := s.db.Where("id = ?", reviewID).First(&rv)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return apperr.NotFound("review not found")
		}
		return apperr.Internal("failed to load review", result.Error)
	}

	if rv.UserID != actor.UserID && actor.Role != auth.RoleAdmin {
		return apperr.Forbidden("cannot delete another user's review")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", reviewID).Delete(&Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete review: %w", err)
		}
		return s.Recompute(tx, rv.ProductID)
	})
	if err != nil {
		return apperr.Internal("failed to delete review", err)
	}
	return nil
}

// Recompute rebuilds a product's rating summary from its review rows.
// The average is rounded to two decimals; a product with no reviews
// holds {0.00, 0}. Must run inside the transaction that mutated the
// reviews.
func (s *Service) Recompute(tx *gorm.DB, productID uint) error {
	var agg struct {
		Average float64
		Count   int
	}
	err := tx.Model(&Review{}).
		Select("COALESCE(AVG(stars), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return fmt.Errorf("failed to aggregate reviews: %w", err)
	}

	rounded := math.Round(agg.Average*100) / 100
	result := tx.Model(&catalog.RatingSummary{}).
		Where("product_id = ?", productID).
		Updates(map[string]interface{}{
			"average_stars": rounded,
			"review_count":  agg.Count,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update rating summary: %w", result.Error)
	}
	return nil
}

// GetSummary retrieves a product's rating summary. The summary row is
// created with the product, so a missing row means a missing product.
func (s *Service) GetSummary(productID uint) (*catalog.RatingSummary, error) {
	var summary catalog.RatingSummary
	result := s.db.Where("product_id = ?", productID).First(&summary)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal("failed to retrieve rating summary", result.Error)
	}
	return &summary, nil
}

// ListForProduct retrieves a product's reviews, newest first
func (s *Service) ListForProduct(productID uint) ([]View, error) {
	if _, err := s.catalog.GetProduct(productID); err != nil {
		return nil, err
	}
	return s.listViews("r.product_id = ?", productID)
}

// ListForBuyer retrieves the reviews a user has written
func (s *Service) ListForBuyer(userID uint) ([]View, error) {
	return s.listViews("r.user_id = ?", userID)
}

// ListForSeller retrieves reviews on the seller's products
func (s *Service) ListForSeller(sellerID uint) ([]View, error) {
	return s.listViews("p.seller_id = ?", sellerID)
}

// ListAll retrieves every review
func (s *Service) ListAll() ([]View, error) {
	return s.listViews("1 = 1")
}

func (s *Service) listViews(condition string, args ...interface{}) ([]View, error) {
	var views []View
	err := s.db.Table("reviews r").
		Select(`r.id, r.user_id, u.username, r.product_id, p.name AS product_name,
			r.stars, r.comment, r.updated_at`).
		Joins("JOIN users u ON u.id = r.user_id").
		Joins("JOIN products p ON p.id = r.product_id").
		Where(condition, args...).
		Order("r.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Internal("failed to list reviews", err)
	}
	return views, nil
}
