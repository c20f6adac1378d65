// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/interfaces/http/handlers"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes configures all API routes
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, redisClient, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db, redisClient, cfg)
	supportHandler := handlers.NewSupportHandler(db, cfg)

	// Every route carries the session cookie: the cart, the cached identity
	// and the checkout draft are all keyed by it.
	api.Use(middleware.Session())

	// Authentication routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/google", authHandler.GoogleSignIn)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
		auth.POST("/logout", checkoutHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(cfg), authHandler.Me)
	}

	// Catalog routes (public)
	products := api.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Cart routes (session-scoped, no account required)
	cart := api.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PATCH("/items/:id", cartHandler.AdjustItem)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
	}

	// Checkout routes (session-scoped; authentication is enforced by
	// reconciliation, which answers not_authenticated rather than 404)
	checkout := api.Group("/checkout")
	{
		checkout.PUT("/contact", checkoutHandler.SetContact)
		checkout.GET("/summary", checkoutHandler.Summary)
		checkout.POST("/submit", checkoutHandler.Submit)
	}

	// Order history routes (require auth)
	orders := api.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:number", orderHandler.GetOrder)
	}

	// Profile routes (require auth)
	profile := api.Group("/profile")
	profile.Use(middleware.AuthMiddleware(cfg))
	{
		profile.PATCH("/contact", profileHandler.UpdateContact)
	}

	// Catalog management (admin only)
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.POST("/products", productHandler.CreateProduct)
		admin.PATCH("/products/:id", productHandler.UpdateProduct)
	}

	// Support routes
	supportGroup := api.Group("/support")
	{
		supportGroup.POST("/tickets", middleware.OptionalAuthMiddleware(cfg), supportHandler.CreateTicket)
		supportGroup.GET("/tickets", middleware.AuthMiddleware(cfg), supportHandler.ListTickets)
	}
}
