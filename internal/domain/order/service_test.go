// internal/domain/order/service_test.go
package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/testutil"
	"gorm.io/gorm"
)

type orderFixture struct {
	db      *gorm.DB
	orders  *order.Service
	catalog *catalog.Service
	buyerID uint
	seller  uint
}

func newOrderFixture(t *testing.T) *orderFixture {
	db := testutil.NewDB(t)
	cfg := testutil.NewConfig()
	catalogService := catalog.NewService(db, cfg)

	buyer := user.User{Username: "bea", Password: "x", Role: "buyer"}
	require.NoError(t, db.Create(&buyer).Error)
	seller := user.User{Username: "sal", Password: "x", Role: "seller"}
	require.NoError(t, db.Create(&seller).Error)

	return &orderFixture{
		db:      db,
		orders:  order.NewService(db, cfg, catalogService),
		catalog: catalogService,
		buyerID: buyer.ID,
		seller:  seller.ID,
	}
}

func (f *orderFixture) seedProduct(t *testing.T, name string, price int64, stock int) *catalog.Product {
	t.Helper()
	product, err := f.catalog.CreateProduct(f.seller, &catalog.CreateProductRequest{
		Name:  name,
		Price: price,
		Stock: stock,
	})
	require.NoError(t, err)
	return product
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Mug", 250, 4)

	o, err := f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(750), o.TotalPrice)
	assert.Equal(t, order.StatusPaid, o.Status)

	reloaded, err := f.catalog.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Mug", 250, 2)

	_, err := f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: product.ID, Quantity: 3})
	assert.True(t, apperr.Is(err, apperr.CodeInsufficientStock))

	// The failed attempt must leave no trace
	var count int64
	require.NoError(t, f.db.Model(&order.Order{}).Count(&count).Error)
	assert.Zero(t, count)

	reloaded, err := f.catalog.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Stock)
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: 42, Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestUpdateStatus(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Mug", 250, 4)

	o, err := f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	updated, err := f.orders.UpdateStatus(o.ID, order.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, order.StatusShipped, updated.Status)
	assert.Equal(t, o.TotalPrice, updated.TotalPrice, "status change never touches the total")

	_, err = f.orders.UpdateStatus(o.ID, order.Status("lost"))
	assert.True(t, apperr.Is(err, apperr.CodeInvalid))

	_, err = f.orders.UpdateStatus(9999, order.StatusShipped)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestListForSeller(t *testing.T) {
	f := newOrderFixture(t)
	mine := f.seedProduct(t, "Mug", 100, 5)

	other := user.User{Username: "other", Password: "x", Role: "seller"}
	require.NoError(t, f.db.Create(&other).Error)
	theirs, err := f.catalog.CreateProduct(other.ID, &catalog.CreateProductRequest{Name: "Shirt", Price: 100, Stock: 5})
	require.NoError(t, err)

	_, err = f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: mine.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: theirs.ID, Quantity: 1})
	require.NoError(t, err)

	sales, err := f.orders.ListForSeller(f.seller)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, mine.ID, sales[0].ProductID)

	purchases, err := f.orders.ListForBuyer(f.buyerID)
	require.NoError(t, err)
	assert.Len(t, purchases, 2)
}

func TestHasPaidOrder(t *testing.T) {
	f := newOrderFixture(t)
	product := f.seedProduct(t, "Mug", 100, 5)

	ok, err := f.orders.HasPaidOrder(f.buyerID, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	o, err := f.orders.CreateOrder(f.buyerID, &order.CreateOrderRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	ok, err = f.orders.HasPaidOrder(f.buyerID, product.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// A refunded order no longer counts as a purchase
	_, err = f.orders.UpdateStatus(o.ID, order.StatusRefunded)
	require.NoError(t, err)

	ok, err = f.orders.HasPaidOrder(f.buyerID, product.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
