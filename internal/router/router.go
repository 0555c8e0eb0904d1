// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/georgeY2002/E-Commerce/internal/cache"
	"github.com/georgeY2002/E-Commerce/internal/config"
	"github.com/georgeY2002/E-Commerce/internal/handlers"
	"github.com/georgeY2002/E-Commerce/internal/middleware"
	"github.com/georgeY2002/E-Commerce/internal/services"
	"github.com/georgeY2002/E-Commerce/internal/utils"
)

func Initialize(db *gorm.DB, c *cache.Cache, cfg *config.Config) *gin.Engine {
	// Initialize services
	storageService, _ := services.NewStorageService(cfg.AWS)
	productService := services.NewProductService(db, c)
	orderService := services.NewOrderService(db, cfg.Payment.CommissionRate)
	reportService := services.NewReportService(db)
	authService := services.NewAuthService(db, cfg.JWT.AccessTokenTTL)
	paymentService := services.NewPaymentService(db, cfg.Payment.StripeSecretKey, cfg.Payment.StripePublishableKey)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService, storageService)
	orderHandler := handlers.NewOrderHandler(orderService, productService)
	adminHandler := handlers.NewAdminHandler(orderService, reportService, productService)
	authHandler := handlers.NewAuthHandler(authService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/profile", middleware.AuthRequired(), authHandler.GetProfile)
		}

		// Public catalog routes
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.GET("/:id/variant-stock", productHandler.GetVariantStock)
		}

		// Order routes, open to guests
		orders := api.Group("/orders")
		orders.Use(middleware.OptionalAuth())
		{
			orders.POST("", middleware.CheckoutRateLimit(), orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.GET("/user/:userId", orderHandler.GetUserOrders)
			orders.PATCH("/:id/status", orderHandler.UpdateStatus)
			orders.PATCH("/:id/cancel", orderHandler.CancelOrder)
		}

		// Payment routes
		payments := api.Group("/payments")
		payments.Use(middleware.OptionalAuth())
		{
			payments.POST("/intent", paymentHandler.CreateIntent)
			payments.POST("/confirm", paymentHandler.ConfirmPayment)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/earnings", adminHandler.GetEarnings)
			admin.GET("/top-products", adminHandler.GetTopProducts)
			admin.GET("/orders", adminHandler.GetOrders)
			admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)

			admin.GET("/products", productHandler.GetProducts)
			admin.GET("/products/:id", productHandler.GetProduct)
			admin.POST("/products", productHandler.CreateProduct)
			admin.PUT("/products/:id", productHandler.UpdateProduct)
			admin.DELETE("/products/:id", productHandler.DeleteProduct)
			admin.POST("/products/upload", productHandler.UploadImage)
		}
	}

	return r
}
