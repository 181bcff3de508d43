// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService  *cart.Service
	auditService *audit.Service
	config       *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, auditService *audit.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		auditService: auditService,
		config:       cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	views, err := h.cartService.ViewCart(actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	var total int64
	for _, v := range views {
		total += v.LineTotal
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  views,
		"total": total,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartAdd, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	line, err := h.cartService.AddToCart(actor.UserID, &req)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartAdd, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionCartAdd, "added %d x product %d to cart", req.Quantity, req.ProductID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    line,
	})
}

// UpdateCartItem handles PUT /cart/items/:productId
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	productID, err := idParam(c, "productId")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartUpdate, err)
		return
	}

	var req cart.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartUpdate, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	line, err := h.cartService.SetQuantity(actor.UserID, productID, req.Quantity)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartUpdate, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionCartUpdate, "set product %d quantity to %d", productID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    line,
	})
}

// RemoveCartItem handles DELETE /cart/items/:productId
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	productID, err := idParam(c, "productId")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartRemove, err)
		return
	}

	if err := h.cartService.RemoveFromCart(actor.UserID, productID); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCartRemove, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionCartRemove, "removed product %d from cart", productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
	})
}
