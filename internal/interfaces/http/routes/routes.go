// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/grocery-backend/internal/config"
	"github.com/your-org/grocery-backend/internal/domain/user"
	"github.com/your-org/grocery-backend/internal/infrastructure/database/redis"
	"github.com/your-org/grocery-backend/internal/interfaces/http/handlers"
	"github.com/your-org/grocery-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupCatalogRoutes(rg, db, cfg)
	setupCartRoutes(rg, db, redisClient, cfg)
	setupCheckoutRoutes(rg, db, redisClient, cfg)
	setupOrderRoutes(rg, db, cfg)
	setupCarrierRoutes(rg, db, cfg)
	setupMessageRoutes(rg, db, cfg)
	setupAdminRoutes(rg, db, cfg)
}

func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

func setupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(user.RoleCustomer))
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:productId", cartHandler.UpdateItem)
		cart.DELETE("/items/:productId", cartHandler.RemoveItem)
	}
}

func setupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(user.RoleCustomer))
	{
		checkout.GET("/quote", checkoutHandler.GetQuote)
		checkout.POST("/coupon", checkoutHandler.ApplyCoupon)
		checkout.DELETE("/coupon", checkoutHandler.RemoveCoupon)
		checkout.POST("", checkoutHandler.PlaceOrder)
	}
}

func setupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(user.RoleCustomer))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/rating", orderHandler.RateOrder)
	}
}

func setupCarrierRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	carrierHandler := handlers.NewCarrierHandler(db, cfg)

	carrier := rg.Group("/carrier")
	carrier.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(user.RoleCarrier))
	{
		carrier.GET("/dashboard", carrierHandler.GetDashboard)
		carrier.GET("/regions", carrierHandler.GetRegions)
		carrier.GET("/earnings", carrierHandler.GetEarnings)
		carrier.POST("/orders/:id/claim", carrierHandler.ClaimOrder)
		carrier.POST("/orders/:id/release", carrierHandler.ReleaseOrder)
		carrier.POST("/orders/:id/complete", carrierHandler.CompleteOrder)
	}
}

func setupMessageRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	messageHandler := handlers.NewMessageHandler(db, cfg)

	messages := rg.Group("/messages")
	messages.Use(middleware.AuthMiddleware(cfg))
	{
		messages.POST("", messageHandler.SendMessage)
		messages.GET("/inbox", messageHandler.GetInbox)
		messages.GET("/sent", messageHandler.GetSent)
		messages.GET("/unread-count", messageHandler.GetUnreadCount)
		messages.PUT("/:id/read", messageHandler.MarkRead)
	}
}

func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	catalogHandler := handlers.NewCatalogHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	couponHandler := handlers.NewCouponHandler(db, cfg)
	loyaltyHandler := handlers.NewLoyaltyHandler(db, cfg)
	analyticsHandler := handlers.NewAnalyticsHandler(db, cfg)
	settingsHandler := handlers.NewSettingsHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireRole(user.RoleAdmin))
	{
		products := admin.Group("/products")
		{
			products.POST("", catalogHandler.CreateProduct)
			products.PUT("/:id", catalogHandler.UpdateProduct)
			products.DELETE("/:id", catalogHandler.DeleteProduct)
			products.PUT("/:id/stock", catalogHandler.AdjustStock)
			products.GET("/low-stock", catalogHandler.GetLowStock)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrdersAdmin)
			orders.GET("/:id", orderHandler.GetOrderAdmin)
			orders.PUT("/:id/cancel", orderHandler.CancelOrder)
		}

		coupons := admin.Group("/coupons")
		{
			coupons.GET("", couponHandler.GetCoupons)
			coupons.POST("", couponHandler.CreateCoupon)
			coupons.PUT("/:id", couponHandler.UpdateCoupon)
			coupons.DELETE("/:id", couponHandler.DeleteCoupon)
		}

		loyalty := admin.Group("/loyalty")
		{
			loyalty.GET("", loyaltyHandler.GetLoyalty)
			loyalty.PUT("", loyaltyHandler.SetLoyalty)
			loyalty.DELETE("", loyaltyHandler.DisableLoyalty)
		}

		reports := admin.Group("/reports")
		{
			reports.GET("/revenue/category", analyticsHandler.GetRevenueByCategory)
			reports.GET("/revenue/over-time", analyticsHandler.GetRevenueByBucket)
			reports.GET("/revenue/amount-range", analyticsHandler.GetRevenueByAmountRange)
			reports.GET("/carriers", analyticsHandler.GetCarrierPerformance)
			reports.GET("/products/top", analyticsHandler.GetMostSoldProducts)
			reports.GET("/customers/top", analyticsHandler.GetMostActiveCustomers)
		}

		settings := admin.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PUT("/:key", settingsHandler.SetSetting)
			settings.DELETE("/:key", settingsHandler.DeleteSetting)
		}

		users := admin.Group("/users")
		{
			users.GET("", settingsHandler.GetUsers)
			users.PUT("/:id/active", settingsHandler.SetUserActive)
		}
	}
}
