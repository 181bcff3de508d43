// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/analytics"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/user"
)

// AdminHandler handles admin dashboard endpoints
type AdminHandler struct {
	analyticsService *analytics.Service
	auditService     *audit.Service
	userService      *user.Service
	config           *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(analyticsService *analytics.Service, auditService *audit.Service, userService *user.Service, cfg *config.Config) *AdminHandler {
	return &AdminHandler{
		analyticsService: analyticsService,
		auditService:     auditService,
		userService:      userService,
		config:           cfg,
	}
}

// GetDashboard handles GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.analyticsService.GetDashboard()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": dashboard,
	})
}

// GetUserStats handles GET /admin/stats/users
func (h *AdminHandler) GetUserStats(c *gin.Context) {
	stats, err := h.analyticsService.GetUserStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// GetProductStats handles GET /admin/stats/products
func (h *AdminHandler) GetProductStats(c *gin.Context) {
	stats, err := h.analyticsService.GetProductStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// GetOrderStats handles GET /admin/stats/orders
func (h *AdminHandler) GetOrderStats(c *gin.Context) {
	stats, err := h.analyticsService.GetOrderStats()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// GetTopProducts handles GET /admin/stats/top-products
func (h *AdminHandler) GetTopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	ranked, err := h.analyticsService.GetTopProducts(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": ranked,
	})
}

// GetLogStats handles GET /admin/stats/logs
func (h *AdminHandler) GetLogStats(c *gin.Context) {
	stats, err := h.analyticsService.GetLogStats(h.auditService)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": stats,
	})
}

// ListAuditLogs handles GET /admin/logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.auditService.List(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	profiles, err := h.userService.List()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  profiles,
		"count": len(profiles),
	})
}
