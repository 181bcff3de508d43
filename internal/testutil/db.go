// internal/testutil/db.go
package testutil

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/review"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory database with the full schema. The pool
// is pinned to one connection so concurrent test traffic serializes the
// way a single SQLite handle requires.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get test database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	models := []interface{}{
		&user.User{},
		&catalog.Product{},
		&catalog.RatingSummary{},
		&cart.Line{},
		&order.Order{},
		&review.Review{},
		&audit.Entry{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			t.Fatalf("failed to migrate %T: %v", model, err)
		}
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewConfig builds a config with sane test defaults, bypassing the
// environment
func NewConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "Marketplace Backend",
			Version:     "test",
			Environment: "test",
		},
		JWT: config.JWTConfig{
			Secret:            "test-secret-key-that-is-long-enough!!",
			AccessTokenExpiry: time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
		Catalog: config.CatalogConfig{
			LowStockThreshold: 10,
			TopProductsLimit:  10,
		},
		Logging: config.LoggingConfig{
			Level:  "error",
			Format: "text",
		},
	}
}
