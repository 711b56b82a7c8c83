package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hoodlab-backend/internal/shared/middleware"
	"hoodlab-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.CORS(c.Config.App.FrontendURL),
		middleware.ClientIP(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupCatalogRoutes(v1, c)
		setupProductRoutes(v1, c)
		setupCartRoutes(v1, c)
		setupOrderRoutes(v1, c)
		setupPaymentRoutes(v1, c)
		setupAdminRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	users := v1.Group("/users")
	users.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		users.GET("/me", c.UserHandler.GetProfile)
		users.PUT("/me", c.UserHandler.UpdateProfile)
		users.PUT("/change-password", c.UserHandler.ChangePassword)
	}
}

// ========================================
// CATALOG ROUTES (public lookup tables)
// ========================================
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/brands", c.CatalogHandler.ListBrands)
	v1.GET("/categories", c.CatalogHandler.ListCategories)
	v1.GET("/colors", c.CatalogHandler.ListColors)
	v1.GET("/sizes", c.CatalogHandler.ListSizes)
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(v1 *gin.RouterGroup, c *container.Container) {
	products := v1.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:id", c.ProductHandler.GetDetail)
	}
}

// ========================================
// CART ROUTES
// ========================================
func setupCartRoutes(v1 *gin.RouterGroup, c *container.Container) {
	cart := v1.Group("/cart")
	cart.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		cart.GET("", c.CartHandler.GetCart)
		cart.POST("/items", c.CartHandler.AddItem)
		cart.PUT("/items/:id", c.CartHandler.UpdateItem)
		cart.DELETE("/items/:id", c.CartHandler.RemoveItem)
		cart.DELETE("", c.CartHandler.Clear)
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(v1 *gin.RouterGroup, c *container.Container) {
	orders := v1.Group("/orders")
	orders.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		orders.POST("", c.OrderHandler.Checkout)
		orders.GET("", c.OrderHandler.ListOrders)
		orders.GET("/:id", c.OrderHandler.GetOrder)
		orders.POST("/:id/cancel", c.OrderHandler.CancelOrder)
	}
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	payment := v1.Group("/payment")

	// Gateway callbacks: unauthenticated, protected by signature verification
	{
		payment.GET("/vnpay/return", c.PaymentHandler.HandleVNPayReturn)
		payment.GET("/vnpay/ipn", c.PaymentHandler.HandleVNPayIPN)
		payment.POST("/vnpay/ipn", c.PaymentHandler.HandleVNPayIPN)
		payment.POST("/momo/callback", c.PaymentHandler.HandleMomoCallback)
	}

	// Payment initiation: user phải đăng nhập
	authed := payment.Group("")
	authed.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		authed.POST("/vnpay", c.PaymentHandler.CreateVNPayPayment)
		authed.POST("/momo", c.PaymentHandler.CreateMomoPayment)
		authed.POST("/ship", c.PaymentHandler.ConfirmShipPayment)
	}
}

// ========================================
// ADMIN ROUTES
// ========================================
func setupAdminRoutes(v1 *gin.RouterGroup, c *container.Container) {
	admin := v1.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(c.Config.JWT.Secret),
		middleware.AdminMiddleware(),
	)
	{
		// User management
		admin.GET("/users", c.UserHandler.AdminListUsers)

		// Catalog management
		admin.POST("/brands", c.CatalogHandler.CreateBrand)
		admin.DELETE("/brands/:id", c.CatalogHandler.DeleteBrand)
		admin.POST("/categories", c.CatalogHandler.CreateCategory)
		admin.DELETE("/categories/:id", c.CatalogHandler.DeleteCategory)
		admin.POST("/colors", c.CatalogHandler.CreateColor)
		admin.DELETE("/colors/:id", c.CatalogHandler.DeleteColor)
		admin.POST("/sizes", c.CatalogHandler.CreateSize)
		admin.DELETE("/sizes/:id", c.CatalogHandler.DeleteSize)

		// Product management
		admin.GET("/products", c.ProductHandler.AdminList)
		admin.POST("/products", c.ProductHandler.Create)
		admin.PUT("/products/:id", c.ProductHandler.Update)
		admin.POST("/products/:id/variants", c.ProductHandler.AddVariant)
		admin.PUT("/products/:id/variants/:variantId/stock", c.ProductHandler.SetStock)

		// Order management
		admin.GET("/orders", c.OrderHandler.AdminListOrders)
		admin.PUT("/orders/:id/status", c.OrderHandler.AdminUpdateStatus)
		admin.GET("/stats/sales", c.OrderHandler.SalesStats)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis - app vẫn serve được khi cache down
		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
