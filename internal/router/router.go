package router

import (
	"github.com/gin-gonic/gin"
	"github.com/craftnest/craftnest-backend/config"
	"github.com/craftnest/craftnest-backend/internal/app/controller"
	"github.com/craftnest/craftnest-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
	orderController    *controller.OrderController
	addressController  *controller.AddressController
	reviewController   *controller.ReviewController
	wishlistController *controller.WishlistController
	emailController    *controller.EmailController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	cartController *controller.CartController,
	checkoutController *controller.CheckoutController,
	orderController *controller.OrderController,
	addressController *controller.AddressController,
	reviewController *controller.ReviewController,
	wishlistController *controller.WishlistController,
	emailController *controller.EmailController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		cartController:     cartController,
		checkoutController: checkoutController,
		orderController:    orderController,
		addressController:  addressController,
		reviewController:   reviewController,
		wishlistController: wishlistController,
		emailController:    emailController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "CraftNest API is running",
		})
	})

	// Compatibility path for the storefront's fire-and-forget mail hook.
	router.POST("/api/send-order-emails", r.emailController.SendOrderEmails)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.Refresh)
			auth.POST("/session", r.authController.Session)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PATCH("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
			auth.PATCH("/me/artisan-settings",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.authController.UpdateArtisanSettings,
			)
		}

		products := v1.Group("/products")
		{
			// public reads carry identity when a token is present so
			// handlers can tailor responses for signed-in shoppers
			products.GET("", r.authMiddleware.OptionalAuthenticate(), r.productController.List)
			products.GET("/:id", r.authMiddleware.OptionalAuthenticate(), r.productController.Get)
			products.GET("/:id/reviews", r.authMiddleware.OptionalAuthenticate(), r.reviewController.ListForProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.Create,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.Update,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.Delete,
			)
			products.POST("/:id/inventory",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.productController.AdjustInventory,
			)
			products.POST("/:id/reviews",
				r.authMiddleware.Authenticate(),
				r.reviewController.Create,
			)
		}

		reviews := v1.Group("/reviews")
		reviews.Use(r.authMiddleware.Authenticate())
		{
			reviews.PUT("/:id", r.reviewController.Update)
			reviews.DELETE("/:id", r.reviewController.Delete)
			reviews.POST("/:id/response",
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.reviewController.Respond,
			)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("/items", r.cartController.AddItem)
			cart.PUT("/items/:productId", r.cartController.UpdateItem)
			cart.DELETE("/items/:productId", r.cartController.RemoveItem)
			cart.DELETE("", r.cartController.Clear)
		}

		checkout := v1.Group("/checkout")
		checkout.Use(r.authMiddleware.Authenticate())
		{
			checkout.POST("", r.checkoutController.Checkout)
			checkout.GET("/quote", r.checkoutController.Quote)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.GET("", r.orderController.GetOrders)
			orders.GET("/artisan",
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.orderController.GetArtisanOrders,
			)
			orders.GET("/:id", r.orderController.GetOrderByID)
			orders.PATCH("/:id/status",
				r.authMiddleware.RequireRole("artisan", "admin"),
				r.orderController.UpdateStatus,
			)
			orders.PATCH("/:id/payment",
				r.authMiddleware.RequireRole("admin"),
				r.orderController.UpdatePaymentStatus,
			)
		}

		wishlist := v1.Group("/wishlist")
		wishlist.Use(r.authMiddleware.Authenticate())
		{
			wishlist.GET("", r.wishlistController.Get)
			wishlist.POST("", r.wishlistController.Add)
			wishlist.DELETE("/:productId", r.wishlistController.Remove)
		}

		addresses := v1.Group("/addresses")
		addresses.Use(r.authMiddleware.Authenticate())
		{
			addresses.GET("", r.addressController.List)
			addresses.POST("", r.addressController.Create)
			addresses.PATCH("/:id", r.addressController.Update)
			addresses.DELETE("/:id", r.addressController.Delete)
			addresses.POST("/:id/default", r.addressController.SetDefault)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
