// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/review"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
)

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService *review.Service
	auditService  *audit.Service
	config        *config.Config
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *review.Service, auditService *audit.Service, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		auditService:  auditService,
		config:        cfg,
	}
}

// SubmitReview handles POST /reviews. Resubmitting for the same product
// overwrites the earlier review.
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req review.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionReviewSubmit, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	rv, err := h.reviewService.AddOrUpdate(actor.UserID, &req)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionReviewSubmit, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionReviewSubmit, "reviewed product %d with %d stars", req.ProductID, req.Stars)

	c.JSON(http.StatusOK, gin.H{
		"message": "Review submitted successfully",
		"data":    rv,
	})
}

// DeleteReview handles DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	reviewID, err := idParam(c, "id")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionReviewDelete, err)
		return
	}

	if err := h.reviewService.Delete(actor, reviewID); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionReviewDelete, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionReviewDelete, "deleted review %d", reviewID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Review deleted successfully",
	})
}

// ListProductReviews handles GET /products/:id/reviews
func (h *ReviewHandler) ListProductReviews(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.reviewService.ListForProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"count": len(views),
	})
}

// GetProductRating handles GET /products/:id/rating
func (h *ReviewHandler) GetProductRating(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reviewService.GetSummary(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": summary,
	})
}

// ListMyReviews handles GET /reviews/mine
func (h *ReviewHandler) ListMyReviews(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	views, err := h.reviewService.ListForBuyer(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"count": len(views),
	})
}

// ListSellerReviews handles GET /reviews/seller
func (h *ReviewHandler) ListSellerReviews(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	views, err := h.reviewService.ListForSeller(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"count": len(views),
	})
}

// ListReviews handles GET /reviews. Buyers see reviews they wrote,
// sellers see reviews on their products, admins see everything.
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var views []review.View
	var err error

	switch actor.Role {
	case auth.RoleAdmin:
		views, err = h.reviewService.ListAll()
	case auth.RoleSeller:
		views, err = h.reviewService.ListForSeller(actor.UserID)
	default:
		views, err = h.reviewService.ListForBuyer(actor.UserID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"count": len(views),
	})
}
