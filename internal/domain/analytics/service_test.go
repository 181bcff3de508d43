// internal/domain/analytics/service_test.go
package analytics_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/domain/analytics"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/testutil"
	"gorm.io/gorm"
)

type analyticsFixture struct {
	db        *gorm.DB
	analytics *analytics.Service
	audit     *audit.Service
	catalog   *catalog.Service
	orders    *order.Service
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	db := testutil.NewDB(t)
	cfg := testutil.NewConfig()
	catalogService := catalog.NewService(db, cfg)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return &analyticsFixture{
		db:        db,
		analytics: analytics.NewService(db, cfg),
		audit:     audit.NewService(db, cfg, logger),
		catalog:   catalogService,
		orders:    order.NewService(db, cfg, catalogService),
	}
}

func (f *analyticsFixture) seedUser(t *testing.T, username, role string) uint {
	t.Helper()
	u := user.User{Username: username, Password: "x", Role: role}
	require.NoError(t, f.db.Create(&u).Error)
	return u.ID
}

func TestGetUserStats(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedUser(t, "b1", "buyer")
	f.seedUser(t, "b2", "buyer")
	f.seedUser(t, "s1", "seller")
	f.seedUser(t, "a1", "admin")

	stats, err := f.analytics.GetUserStats()
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.Buyers)
	assert.Equal(t, int64(1), stats.Sellers)
	assert.Equal(t, int64(1), stats.Admins)
}

func TestGetProductStats(t *testing.T) {
	f := newAnalyticsFixture(t)
	seller := f.seedUser(t, "sal", "seller")

	// Threshold is 10: one product under it, one on it
	_, err := f.catalog.CreateProduct(seller, &catalog.CreateProductRequest{Name: "Scarce", Price: 100, Stock: 3})
	require.NoError(t, err)
	_, err = f.catalog.CreateProduct(seller, &catalog.CreateProductRequest{Name: "Plenty", Price: 100, Stock: 10})
	require.NoError(t, err)

	stats, err := f.analytics.GetProductStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.LowStock)
}

func TestGetOrderStatsAndTopProducts(t *testing.T) {
	f := newAnalyticsFixture(t)
	seller := f.seedUser(t, "sal", "seller")
	buyer := f.seedUser(t, "bea", "buyer")

	mug, err := f.catalog.CreateProduct(seller, &catalog.CreateProductRequest{Name: "Mug", Price: 100, Stock: 50})
	require.NoError(t, err)
	shirt, err := f.catalog.CreateProduct(seller, &catalog.CreateProductRequest{Name: "Shirt", Price: 500, Stock: 50})
	require.NoError(t, err)

	_, err = f.orders.CreateOrder(buyer, &order.CreateOrderRequest{ProductID: mug.ID, Quantity: 5})
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(buyer, &order.CreateOrderRequest{ProductID: shirt.ID, Quantity: 2})
	require.NoError(t, err)

	cancelled, err := f.orders.CreateOrder(buyer, &order.CreateOrderRequest{ProductID: shirt.ID, Quantity: 4})
	require.NoError(t, err)
	_, err = f.orders.UpdateStatus(cancelled.ID, order.StatusCancelled)
	require.NoError(t, err)

	stats, err := f.analytics.GetOrderStats()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.ByStatus["paid"])
	assert.Equal(t, int64(1), stats.ByStatus["cancelled"])
	assert.Equal(t, int64(5*100+2*500), stats.Revenue, "revenue counts paid orders only")

	ranked, err := f.analytics.GetTopProducts(10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, mug.ID, ranked[0].ProductID, "ranked by paid units sold")
	assert.Equal(t, int64(5), ranked[0].UnitsSold)
	assert.Equal(t, int64(2), ranked[1].UnitsSold, "cancelled quantities do not count")
}

func TestGetLogStats(t *testing.T) {
	f := newAnalyticsFixture(t)
	buyer := f.seedUser(t, "bea", "buyer")
	seller := f.seedUser(t, "sal", "seller")

	f.audit.RecordFor(buyer, audit.ActionLogin, "logged in")
	f.audit.RecordFor(buyer, audit.ActionCartAdd, "added to cart")
	f.audit.RecordFor(seller, audit.ActionProductCreate, "created product")
	f.audit.Record(nil, audit.ActionLogin, "failed login for unknown user")

	stats, err := f.analytics.GetLogStats(f.audit)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(2), stats.ActiveUsers)
	require.NotEmpty(t, stats.Recent)
	assert.Equal(t, audit.ActionLogin, stats.Recent[0].Action, "recent entries come newest first")
	assert.Nil(t, stats.Recent[0].UserID)
}

func TestGetDashboard(t *testing.T) {
	f := newAnalyticsFixture(t)
	f.seedUser(t, "bea", "buyer")

	dashboard, err := f.analytics.GetDashboard()
	require.NoError(t, err)
	assert.Equal(t, int64(1), dashboard.Users.Total)
	assert.Zero(t, dashboard.Orders.Total)
	assert.Empty(t, dashboard.TopProducts)
}
