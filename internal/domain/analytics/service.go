// internal/domain/analytics/service.go
package analytics

import (
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"gorm.io/gorm"
)

// Service computes admin dashboard statistics with aggregate queries.
// All reads, no state.
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UserStats is the account census by role
type UserStats struct {
	Total   int64 `json:"total"`
	Buyers  int64 `json:"buyers"`
	Sellers int64 `json:"sellers"`
	Admins  int64 `json:"admins"`
}

// ProductStats is the catalog census
type ProductStats struct {
	Total    int64 `json:"total"`
	LowStock int64 `json:"low_stock"`
}

// OrderStats is the order ledger census. Revenue counts paid orders only.
type OrderStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
	Revenue  int64            `json:"revenue"` // In cents
}

// RankedProduct is one row of the sales leaderboard
type RankedProduct struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	UnitsSold int64  `json:"units_sold"`
	Revenue   int64  `json:"revenue"`
}

// LogStats summarizes audit activity
type LogStats struct {
	Total       int64             `json:"total"`
	ActiveUsers int64             `json:"active_users"`
	Recent      []audit.EntryView `json:"recent"`
}

// Dashboard bundles every statistic for the admin overview page
type Dashboard struct {
	Users       UserStats       `json:"users"`
	Products    ProductStats    `json:"products"`
	Orders      OrderStats      `json:"orders"`
	TopProducts []RankedProduct `json:"top_products"`
}

// GetUserStats counts accounts per role
func (s *Service) GetUserStats() (*UserStats, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := s.db.Table("users").
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to compute user stats", err)
	}

	stats := &UserStats{}
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Role {
		case "buyer":
			stats.Buyers = row.Count
		case "seller":
			stats.Sellers = row.Count
		case "admin":
			stats.Admins = row.Count
		}
	}
	return stats, nil
}

// GetProductStats counts products, flagging those under the low-stock
// threshold
func (s *Service) GetProductStats() (*ProductStats, error) {
	stats := &ProductStats{}
	if err := s.db.Table("products").Count(&stats.Total).Error; err != nil {
		return nil, apperr.Internal("failed to count products", err)
	}
	err := s.db.Table("products").
		Where("stock < ?", s.config.Catalog.LowStockThreshold).
		Count(&stats.LowStock).Error
	if err != nil {
		return nil, apperr.Internal("failed to count low stock products", err)
	}
	return stats, nil
}

// GetOrderStats counts orders per status and sums paid revenue
func (s *Service) GetOrderStats() (*OrderStats, error) {
	var rows []struct {
		Status  string
		Count   int64
		Revenue int64
	}
	err := s.db.Table("orders").
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_price), 0) AS revenue").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to compute order stats", err)
	}

	stats := &OrderStats{ByStatus: map[string]int64{}}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[row.Status] = row.Count
		if row.Status == "paid" {
			stats.Revenue = row.Revenue
		}
	}
	return stats, nil
}

// GetTopProducts ranks products by paid units sold
func (s *Service) GetTopProducts(limit int) ([]RankedProduct, error) {
	if limit <= 0 {
		limit = s.config.Catalog.TopProductsLimit
	}

	var ranked []RankedProduct
	err := s.db.Table("orders o").
		Select(`o.product_id, p.name, SUM(o.quantity) AS units_sold,
			SUM(o.total_price) AS revenue`).
		Joins("JOIN products p ON p.id = o.product_id").
		Where("o.status = ?", "paid").
		Group("o.product_id, p.name").
		Order("units_sold DESC, o.product_id ASC").
		Limit(limit).
		Scan(&ranked).Error
	if err != nil {
		return nil, apperr.Internal("failed to rank products", err)
	}
	return ranked, nil
}

// GetLogStats summarizes audit activity with the ten latest entries
func (s *Service) GetLogStats(auditService *audit.Service) (*LogStats, error) {
	stats := &LogStats{}
	if err := s.db.Table("audit_logs").Count(&stats.Total).Error; err != nil {
		return nil, apperr.Internal("failed to count audit entries", err)
	}
	err := s.db.Table("audit_logs").
		Where("user_id IS NOT NULL").
		Distinct("user_id").
		Count(&stats.ActiveUsers).Error
	if err != nil {
		return nil, apperr.Internal("failed to count active users", err)
	}

	recent, err := auditService.List(10)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent
	return stats, nil
}

// GetDashboard assembles the full admin overview
func (s *Service) GetDashboard() (*Dashboard, error) {
	users, err := s.GetUserStats()
	if err != nil {
		return nil, err
	}
	products, err := s.GetProductStats()
	if err != nil {
		return nil, err
	}
	orders, err := s.GetOrderStats()
	if err != nil {
		return nil, err
	}
	top, err := s.GetTopProducts(s.config.Catalog.TopProductsLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Users:       *users,
		Products:    *products,
		Orders:      *orders,
		TopProducts: top,
	}, nil
}
