// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/analytics"
	"github.com/your-org/marketplace-backend/internal/domain/audit"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/catalog"
	"github.com/your-org/marketplace-backend/internal/domain/checkout"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/review"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/handlers"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
	"github.com/your-org/marketplace-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group onto rg
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	// Services, leaf first
	catalogService := catalog.NewService(db, cfg)
	cartService := cart.NewService(db, cfg, catalogService)
	orderService := order.NewService(db, cfg, catalogService)
	reviewService := review.NewService(db, cfg, catalogService, orderService)
	checkoutService := checkout.NewService(db, cfg, catalogService, cartService)
	userService := user.NewService(db, cfg)
	auditService := audit.NewService(db, cfg, logger)
	analyticsService := analytics.NewService(db, cfg)
	pdfService := pdf.NewService(cfg)

	authHandler := handlers.NewAuthHandler(userService, auditService, cfg)
	productHandler := handlers.NewProductHandler(catalogService, auditService, cfg)
	cartHandler := handlers.NewCartHandler(cartService, auditService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, auditService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, catalogService, userService, pdfService, auditService, cfg)
	reviewHandler := handlers.NewReviewHandler(reviewService, auditService, cfg)
	adminHandler := handlers.NewAdminHandler(analyticsService, auditService, userService, cfg)

	// Auth
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)

		protected := authGroup.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.GetProfile)
		}
	}

	// Catalog: browsing is public, mutation is seller-only. Optional auth
	// attaches the actor for logged-in browsers without requiring a token.
	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.SearchProducts)
		products.GET("/search", productHandler.SearchProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.ListProductReviews)
		products.GET("/:id/rating", reviewHandler.GetProductRating)

		selling := products.Group("")
		selling.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(auth.RoleSeller))
		{
			selling.POST("", productHandler.CreateProduct)
			selling.PUT("/:id", productHandler.UpdateProduct)
			selling.DELETE("/:id", productHandler.DeleteProduct)
		}
	}

	// Cart and checkout, buyer-only
	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(auth.RoleBuyer))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:productId", cartHandler.RemoveCartItem)
	}

	checkoutGroup := rg.Group("/checkout")
	checkoutGroup.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(auth.RoleBuyer))
	{
		checkoutGroup.POST("", checkoutHandler.Checkout)
	}

	// Orders
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.GetOrderReceipt)

		buying := orders.Group("")
		buying.Use(middleware.RequireRole(auth.RoleBuyer))
		{
			buying.POST("", orderHandler.CreateOrder)
		}

		managing := orders.Group("")
		managing.Use(middleware.RequireRole(auth.RoleAdmin))
		{
			managing.PUT("/:id/status", orderHandler.UpdateOrderStatus)
			managing.DELETE("/:id", orderHandler.DeleteOrder)
		}
	}

	// Reviews
	reviews := rg.Group("/reviews")
	reviews.Use(middleware.AuthMiddleware(cfg))
	{
		reviews.GET("", reviewHandler.ListReviews)
		reviews.GET("/mine", reviewHandler.ListMyReviews)
		reviews.GET("/seller", middleware.RequireRole(auth.RoleSeller), reviewHandler.ListSellerReviews)
		reviews.DELETE("/:id", reviewHandler.DeleteReview)

		reviewing := reviews.Group("")
		reviewing.Use(middleware.RequireRole(auth.RoleBuyer))
		{
			reviewing.POST("", reviewHandler.SubmitReview)
		}
	}

	// Admin dashboard
	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/stats/users", adminHandler.GetUserStats)
		admin.GET("/stats/products", adminHandler.GetProductStats)
		admin.GET("/stats/orders", adminHandler.GetOrderStats)
		admin.GET("/stats/top-products", adminHandler.GetTopProducts)
		admin.GET("/stats/logs", adminHandler.GetLogStats)
		admin.GET("/logs", adminHandler.ListAuditLogs)
		admin.GET("/users", adminHandler.ListUsers)
	}
}
