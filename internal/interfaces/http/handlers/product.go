// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	catalogService *catalog.Service
	auditService   *audit.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *catalog.Service, auditService *audit.Service, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		auditService:   auditService,
		config:         cfg,
	}
}

// SearchProducts handles GET /products
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var req catalog.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, apperr.Invalid("invalid search filters: %s", err.Error()))
		return
	}

	results, err := h.catalogService.SearchProducts(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  results,
		"count": len(results),
	})
}

// GetProduct handles GET /products/:id. The route is public; when the
// caller turns out to be the product's seller or an admin, the response
// also carries a low-stock flag.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.catalogService.GetProduct(productID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"data": product}
	if actor, ok := middleware.GetActor(c); ok && (actor.UserID == product.SellerID || actor.Role == auth.RoleAdmin) {
		response["low_stock"] = product.IsLowStock(h.config.Catalog.LowStockThreshold)
	}

	c.JSON(http.StatusOK, response)
}

// CreateProduct handles POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var req catalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductCreate, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	product, err := h.catalogService.CreateProduct(actor.UserID, &req)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductCreate, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionProductCreate, "created product %d (%s)", product.ID, product.Name)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct handles PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	productID, err := idParam(c, "id")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductUpdate, err)
		return
	}

	var req catalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductUpdate, apperr.Invalid("invalid request data: %s", err.Error()))
		return
	}

	product, err := h.catalogService.UpdateProduct(productID, actor.UserID, &req)
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductUpdate, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionProductUpdate, "updated product %d", product.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	productID, err := idParam(c, "id")
	if err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductDelete, err)
		return
	}

	if err := h.catalogService.DeleteProduct(productID, actor.UserID); err != nil {
		respondFailure(c, h.auditService, &actor.UserID, audit.ActionProductDelete, err)
		return
	}

	h.auditService.RecordFor(actor.UserID, audit.ActionProductDelete, "deleted product %d", productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// idParam parses a numeric path parameter
func idParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperr.Invalid("invalid %s parameter", name)
	}
	return uint(value), nil
}

// parseIDParam is idParam with the error response already written, for
// read-only handlers
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := idParam(c, name)
	if err != nil {
		respondError(c, err)
		return 0, false
	}
	return value, true
}
