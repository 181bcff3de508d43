// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
	"github.com/your-org/marketplace-backend/internal/pkg/pdf"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService   *order.Service
	catalogService *catalog.Service
	userService    *user.Service
	pdfService     *pdf.Service
	auditService   *audit.Service
	config         *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, catalogService *catalog.Service, userService *user.Service, pdfService *pdf.Service, auditService *audit.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		catalogService: catalogService,
		userService:    userService,
		pdfService:     pdfService,
		auditService:   auditService,
		config:         cfg,
	}
}

// ListOrders handles GET /orders. The visible set depends on role:
// buyers see their purchases, sellers see sales of their products,
// admins see everything.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var orders []order.Order
	var err error

	switch actor.Role {
	case auth.RoleAdmin:
		orders, err = h.orderService.ListAll()
	case auth.RoleSeller:
		orders, err = h.orderService.ListForSeller(actor.UserID)
	default:
		orders, err = h.orderService.ListForBuyer(actor.UserID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  orders,
		"count": len(orders),
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	o, err := h.loadVisibleOrder(actor, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": o,
	})
}

// CreateOrder handles POST /orders, the direct buy-now path that skips
// the cart
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req order.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderCreate, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	o, err := h.orderService.CreateOrder(actor.UserID, &req)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderCreate, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionOrderCreate, "placed order %d for product %d", o.ID, o.ProductID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    o,
	})
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	orderID, err := idParam(c, "id")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderUpdate, err)
		return
	}

	var req order.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderUpdate, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	o, err := h.orderService.UpdateStatus(orderID, req.Status)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderUpdate, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionOrderUpdate, "set order %d status to %s", orderID, req.Status)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

// DeleteOrder handles DELETE /orders/:id
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	orderID, err := idParam(c, "id")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderDelete, err)
		return
	}

	if err := h.orderService.DeleteOrder(orderID); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionOrderDelete, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionOrderDelete, "deleted order %d", orderID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Order deleted successfully",
	})
}

// GetOrderReceipt handles GET /orders/:id/receipt, streaming a PDF.
// Only paid orders have receipts; cancelled or refunded ones do not.
func (h *OrderHandler) GetOrderReceipt(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	o, err := h.loadVisibleOrder(actor, orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !o.IsPaid() {
		respondError(c, apperr.Invalid("receipt is only available for paid orders"))
		return
	}

	buyer, err := h.userService.GetProfile(o.BuyerID)
	if err != nil {
		respondError(c, err)
		return
	}

	productName := fmt.Sprintf("Product #%d", o.ProductID)
	if product, err := h.catalogService.GetProduct(o.ProductID); err == nil {
		productName = product.Name
	}

	receipt, err := h.pdfService.GenerateReceipt(o, buyer.Username, productName)
	if err != nil {
		respondError(c, apperr.Internal("failed to generate receipt", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%d.pdf", o.ID))
	c.Data(http.StatusOK, "application/pdf", receipt.Bytes())
}

// loadVisibleOrder loads an order and enforces role-based visibility
func (h *OrderHandler) loadVisibleOrder(actor auth.Actor, orderID uint) (*order.Order, error) {
	o, err := h.orderService.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case auth.RoleAdmin:
		return o, nil
	case auth.RoleSeller:
		product, err := h.catalogService.GetProduct(o.ProductID)
		if err != nil || product.SellerID != actor.UserID {
			return nil, apperr.Forbidden("order does not involve your products")
		}
		return o, nil
	default:
		if o.BuyerID != actor.UserID {
			return nil, apperr.Forbidden("order belongs to another buyer")
		}
		return o, nil
	}
}
