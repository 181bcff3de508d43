// internal/domain/cart/service_test.go
package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/testutil"
	"gorm.io/gorm"
)

type cartFixture struct {
	db      *gorm.DB
	cart    *cart.Service
	catalog *catalog.Service
	buyerID uint
}

func newCartFixture(t *testing.T) *cartFixture {
	db := testutil.NewDB(t)
	cfg := testutil.NewConfig()
	catalogService := catalog.NewService(db, cfg)

	buyer := user.User{Username: "bea", Password: "x", Role: "buyer"}
	require.NoError(t, db.Create(&buyer).Error)

	return &cartFixture{
		db:      db,
		cart:    cart.NewService(db, cfg, catalogService),
		catalog: catalogService,
		buyerID: buyer.ID,
	}
}

func (f *cartFixture) seedProduct(t *testing.T, name string, price int64, stock int) *catalog.Product {
	t.Helper()
	seller := user.User{Username: "seller-" + name, Password: "x", Role: "seller"}
	require.NoError(t, f.db.Create(&seller).Error)

	product, err := f.catalog.CreateProduct(seller.ID, &catalog.CreateProductRequest{
		Name:  name,
		Price: price,
		Stock: stock,
	})
	require.NoError(t, err)
	return product
}

func TestAddToCartAccumulates(t *testing.T) {
	f := newCartFixture(t)
	product := f.seedProduct(t, "Mug", 100, 5)

	line, err := f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	line, err = f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	// One row per (user, product)
	var count int64
	require.NoError(t, f.db.Model(&cart.Line{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Cumulative quantity beyond stock is rejected
	_, err = f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.CodeInsufficientStock))
}

func TestAddToCartUnknownProduct(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: 42, Quantity: 1})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestSetQuantityOverwrites(t *testing.T) {
	f := newCartFixture(t)
	product := f.seedProduct(t, "Mug", 100, 5)

	_, err := f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 4})
	require.NoError(t, err)

	line, err := f.cart.SetQuantity(f.buyerID, product.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	_, err = f.cart.SetQuantity(f.buyerID, product.ID, 6)
	assert.True(t, apperr.Is(err, apperr.CodeInsufficientStock))

	_, err = f.cart.SetQuantity(f.buyerID, product.ID, 0)
	assert.True(t, apperr.Is(err, apperr.CodeInvalid))

	_, err = f.cart.SetQuantity(f.buyerID, 9999, 1)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestRemoveFromCart(t *testing.T) {
	f := newCartFixture(t)
	product := f.seedProduct(t, "Mug", 100, 5)

	_, err := f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.cart.RemoveFromCart(f.buyerID, product.ID))

	err = f.cart.RemoveFromCart(f.buyerID, product.ID)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestViewCartInsertionOrderAndTotals(t *testing.T) {
	f := newCartFixture(t)
	mug := f.seedProduct(t, "Mug", 150, 10)
	shirt := f.seedProduct(t, "Shirt", 2000, 10)

	_, err := f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: shirt.ID, Quantity: 1})
	require.NoError(t, err)
	_, err = f.cart.AddToCart(f.buyerID, &cart.AddToCartRequest{ProductID: mug.ID, Quantity: 3})
	require.NoError(t, err)

	views, err := f.cart.ViewCart(f.buyerID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Shirt", views[0].Name, "lines come back in insertion order")
	assert.Equal(t, int64(2000), views[0].LineTotal)
	assert.Equal(t, "Mug", views[1].Name)
	assert.Equal(t, int64(450), views[1].LineTotal)
}
