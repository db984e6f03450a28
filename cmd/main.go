package main

import (
	"fmt"
	"os"
	"time"

	"github.com/plantngo/backend/internal/cache"
	"github.com/plantngo/backend/internal/db"
	"github.com/plantngo/backend/internal/handlers"
	"github.com/plantngo/backend/internal/locks"
	"github.com/plantngo/backend/internal/logger"
	"github.com/plantngo/backend/internal/middleware"
	"github.com/plantngo/backend/internal/repos"
	"github.com/plantngo/backend/internal/server"
	"github.com/plantngo/backend/internal/services"
	"github.com/plantngo/backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	customerRepo := repos.NewCustomerRepo(thePG, log)
	merchantRepo := repos.NewMerchantRepo(thePG, log)
	voucherRepo := repos.NewVoucherRepo(thePG, log)
	cartRepo := repos.NewCartRepo(thePG, log)
	ownedRepo := repos.NewOwnedVoucherRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	ingredientRepo := repos.NewIngredientRepo(thePG, log)
	productIngredientRepo := repos.NewProductIngredientRepo(thePG, log)

	// Locks
	customerLock := locks.NewKeyedMutex()
	productLock := locks.NewKeyedMutex()

	// Voucher catalog cache (optional)
	var voucherCache *cache.VoucherCache
	if vc, err := cache.NewVoucherCache(log); err != nil {
		log.Warn("Voucher cache disabled", "error", err)
	} else {
		voucherCache = vc
		defer voucherCache.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, customerRepo, merchantRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	customerService := services.NewCustomerService(thePG, log, customerRepo, cartRepo, ownedRepo)
	merchantService := services.NewMerchantService(thePG, log, merchantRepo)
	shopService := services.NewShopService(thePG, log, voucherRepo, productRepo, ingredientRepo, voucherCache)
	productService := services.NewProductService(thePG, log, productLock, productRepo, ingredientRepo, productIngredientRepo)
	purchaseService := services.NewVoucherPurchaseService(thePG, log, customerLock, customerRepo, voucherRepo, cartRepo, ownedRepo, orderRepo, voucherCache)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	shopHandler := handlers.NewShopHandler(shopService, merchantService)
	productHandler := handlers.NewProductHandler(productService)
	purchaseHandler := handlers.NewVoucherPurchaseHandler(purchaseService, customerService, merchantService, shopService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:            authHandler,
		AuthMiddleware:         authMiddleware,
		CustomerHandler:        customerHandler,
		MerchantHandler:        merchantHandler,
		ShopHandler:            shopHandler,
		ProductHandler:         productHandler,
		VoucherPurchaseHandler: purchaseHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
