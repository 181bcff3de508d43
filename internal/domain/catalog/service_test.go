// internal/domain/catalog/service_test.go
package catalog_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/testutil"
	"gorm.io/gorm"
)

func newCatalogService(t *testing.T) (*catalog.Service, *gorm.DB) {
	db := testutil.NewDB(t)
	return catalog.NewService(db, testutil.NewConfig()), db
}

func seedSeller(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	u := user.User{Username: username, Password: "x", Role: "seller"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func TestCreateProductCreatesSummary(t *testing.T) {
	svc, db := newCatalogService(t)
	sellerID := seedSeller(t, db, "alice")

	product, err := svc.CreateProduct(sellerID, &catalog.CreateProductRequest{
		Name:  "Gopher Mug",
		Price: 1299,
		Stock: 5,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)

	var summary catalog.RatingSummary
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&summary).Error)
	assert.Equal(t, 0.0, summary.AverageStars)
	assert.Equal(t, 0, summary.ReviewCount)
}

func TestCreateProductValidation(t *testing.T) {
	svc, db := newCatalogService(t)
	sellerID := seedSeller(t, db, "alice")

	_, err := svc.CreateProduct(sellerID, &catalog.CreateProductRequest{Name: "  ", Price: 100})
	assert.True(t, apperr.Is(err, apperr.CodeInvalid))

	_, err = svc.CreateProduct(sellerID, &catalog.CreateProductRequest{Name: "Mug", Price: -1})
	assert.True(t, apperr.Is(err, apperr.CodeInvalid))
}

func TestUpdateProductOwnership(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := seedSeller(t, db, "alice")
	bob := seedSeller(t, db, "bob")

	product, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Mug", Price: 100, Stock: 1})
	require.NoError(t, err)

	newName := "Better Mug"
	_, err = svc.UpdateProduct(product.ID, bob, &catalog.UpdateProductRequest{Name: &newName})
	assert.True(t, apperr.Is(err, apperr.CodeNotFound), "foreign seller must not learn the product exists")

	updated, err := svc.UpdateProduct(product.ID, alice, &catalog.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Better Mug", updated.Name)
	assert.Equal(t, int64(100), updated.Price)
}

func TestDeleteProductCascades(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := seedSeller(t, db, "alice")

	product, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Mug", Price: 100, Stock: 10})
	require.NoError(t, err)

	require.NoError(t, db.Exec("INSERT INTO reviews (user_id, product_id, stars, comment) VALUES (1, ?, 5, 'x')", product.ID).Error)
	require.NoError(t, db.Exec("INSERT INTO orders (buyer_id, product_id, quantity, total_price, status) VALUES (1, ?, 1, 100, 'paid')", product.ID).Error)
	require.NoError(t, db.Exec("INSERT INTO cart_lines (user_id, product_id, quantity) VALUES (1, ?, 2)", product.ID).Error)

	require.NoError(t, svc.DeleteProduct(product.ID, alice))

	for _, table := range []string{"products", "rating_summaries", "reviews", "orders", "cart_lines"} {
		var count int64
		require.NoError(t, db.Table(table).Count(&count).Error)
		assert.Zero(t, count, "table %s should be empty after cascade", table)
	}

	// Deleting again reports not found
	err = svc.DeleteProduct(product.ID, alice)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
}

func TestSearchProductsByRating(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := seedSeller(t, db, "alice")

	mug, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Mug", Price: 100, Stock: 1})
	require.NoError(t, err)
	shirt, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Shirt", Price: 200, Stock: 1})
	require.NoError(t, err)

	require.NoError(t, db.Exec("UPDATE rating_summaries SET average_stars = 4.5, review_count = 3 WHERE product_id = ?", shirt.ID).Error)
	require.NoError(t, db.Exec("UPDATE rating_summaries SET average_stars = 5.0, review_count = 1 WHERE product_id = ?", mug.ID).Error)

	results, err := svc.SearchProducts(&catalog.SearchRequest{OrderBy: "rating"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, shirt.ID, results[0].ID, "more reviews ranks first regardless of average")
	assert.Equal(t, "alice", results[0].SellerName)
}

func TestSearchProductsFilters(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := seedSeller(t, db, "alice")
	bob := seedSeller(t, db, "bob")

	_, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Gopher Mug", Price: 100, Stock: 1})
	require.NoError(t, err)
	_, err = svc.CreateProduct(bob, &catalog.CreateProductRequest{Name: "Gopher Shirt", Price: 200, Stock: 1})
	require.NoError(t, err)

	results, err := svc.SearchProducts(&catalog.SearchRequest{Name: "mug"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gopher Mug", results[0].Name)

	results, err = svc.SearchProducts(&catalog.SearchRequest{SellerName: "bob"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Gopher Shirt", results[0].Name)
}

func TestDecrementStock(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := seedSeller(t, db, "alice")

	product, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Mug", Price: 100, Stock: 3})
	require.NoError(t, err)

	require.NoError(t, svc.DecrementStock(nil, product.ID, 2))

	err = svc.DecrementStock(nil, product.ID, 2)
	assert.True(t, apperr.Is(err, apperr.CodeInsufficientStock))

	err = svc.DecrementStock(nil, 9999, 1)
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))

	reloaded, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestDecrementStockConcurrent(t *testing.T) {
	svc, db := newCatalogService(t)
	alice := seedSeller(t, db, "alice")

	product, err := svc.CreateProduct(alice, &catalog.CreateProductRequest{Name: "Mug", Price: 100, Stock: 5})
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.DecrementStock(nil, product.ID, 1); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded, "exactly the available units can be taken")

	reloaded, err := svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Stock)
	assert.GreaterOrEqual(t, reloaded.Stock, 0)
}
