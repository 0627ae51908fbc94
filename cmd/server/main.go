package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/craftnest/craftnest-backend/config"
	"github.com/craftnest/craftnest-backend/internal/app/controller"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/app/service"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/craftnest/craftnest-backend/internal/middleware"
	"github.com/craftnest/craftnest-backend/internal/router"
	"github.com/craftnest/craftnest-backend/pkg/logger"
	"github.com/craftnest/craftnest-backend/pkg/mailer"
	"github.com/craftnest/craftnest-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // "json" for production
		EnableColor: true,
	})

	logger.Info("Starting CraftNest Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs token revocation; the server still runs without it.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	wishlistRepo := repository.NewWishlistRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	// Services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo)
	inventoryService := service.NewInventoryService(db.GetDB())
	cartService := service.NewCartService(cartRepo, productRepo)
	wishlistService := service.NewWishlistService(wishlistRepo, productRepo)
	addressService := service.NewAddressService(addressRepo)
	reviewService := service.NewReviewService(reviewRepo, productRepo, userRepo)
	orderService := service.NewOrderService(orderRepo, db.GetDB())
	notificationService := service.NewNotificationService(mailer.New(&cfg.SMTP), userRepo)
	checkoutService := service.NewCheckoutService(
		orderService,
		notificationService,
		userRepo,
		cartRepo,
		addressRepo,
		cfg.Checkout,
	)

	// Controllers
	authController := controller.NewAuthController(authService, userService)
	productController := controller.NewProductController(productService, inventoryService)
	cartController := controller.NewCartController(cartService)
	checkoutController := controller.NewCheckoutController(checkoutService)
	orderController := controller.NewOrderController(orderService)
	addressController := controller.NewAddressController(addressService)
	reviewController := controller.NewReviewController(reviewService)
	wishlistController := controller.NewWishlistController(wishlistService)
	emailController := controller.NewEmailController(notificationService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	r := router.NewRouter(
		authController,
		productController,
		cartController,
		checkoutController,
		orderController,
		addressController,
		reviewController,
		wishlistController,
		emailController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
