// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/checkout"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	auditService    *audit.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, auditService *audit.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		auditService:    auditService,
		config:          cfg,
	}
}

// Checkout handles POST /checkout. A 200 response can carry failed
// lines; callers must inspect both lists.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	result, err := h.checkoutService.Checkout(actor.UserID)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionCheckout, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionCheckout,
		"checkout completed: %d purchased, %d failed", len(result.Successful), len(result.Failed))

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout completed",
		"data":    result,
	})
}
