package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/plantngo/backend/internal/handlers"
	"github.com/plantngo/backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler            *handlers.AuthHandler
	AuthMiddleware         *middleware.AuthMiddleware
	CustomerHandler        *handlers.CustomerHandler
	MerchantHandler        *handlers.MerchantHandler
	ShopHandler            *handlers.ShopHandler
	ProductHandler         *handlers.ProductHandler
	VoucherPurchaseHandler *handlers.VoucherPurchaseHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api/v1")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api/v1")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Store: catalog, cart, owned vouchers, purchase
	store := protected.Group("/store")
	store.GET("", cfg.VoucherPurchaseHandler.GetAllVouchers)
	store.GET("/:username/my-vouchers", cfg.VoucherPurchaseHandler.GetAllOwnedVouchers)
	store.POST("/:username/my-vouchers", cfg.VoucherPurchaseHandler.AddOwnedVoucher)
	store.DELETE("/:username/my-vouchers", cfg.VoucherPurchaseHandler.DeleteOwnedVoucher)
	store.GET("/:username/my-cart", cfg.VoucherPurchaseHandler.GetAllInCartVouchers)
	store.POST("/:username/my-cart", cfg.VoucherPurchaseHandler.AddToCart)
	store.DELETE("/:username/my-cart", cfg.VoucherPurchaseHandler.DeleteFromCart)
	store.POST("/:username/purchase-voucher", cfg.VoucherPurchaseHandler.PurchaseVouchers)

	// Products and ingredient composition
	products := protected.Group("/products")
	products.GET("", cfg.ProductHandler.GetAllProducts)
	products.GET("/ingredients", cfg.ProductHandler.GetAllProductIngredients)
	products.GET("/:productId", cfg.ProductHandler.GetProduct)
	products.POST("/:productId/ingredients", cfg.ProductHandler.AddProductIngredient)
	products.PUT("/:productId/ingredients", cfg.ProductHandler.UpdateProductIngredient)
	products.DELETE("/:productId/ingredients/:ingredientName", cfg.ProductHandler.DeleteProductIngredient)

	// Merchant-side shop management
	shop := protected.Group("/shop/:username")
	shop.GET("/vouchers", cfg.ShopHandler.GetMerchantVouchers)
	shop.POST("/vouchers", cfg.ShopHandler.CreateVoucher)
	shop.PUT("/vouchers/:voucherId", cfg.ShopHandler.UpdateVoucher)
	shop.DELETE("/vouchers/:voucherId", cfg.ShopHandler.DeleteVoucher)
	shop.GET("/products", cfg.ShopHandler.GetMerchantProducts)
	shop.POST("/products", cfg.ShopHandler.CreateProduct)
	protected.POST("/ingredients", cfg.ShopHandler.CreateIngredient)

	// Accounts
	protected.GET("/customers", cfg.CustomerHandler.GetAllCustomers)
	protected.GET("/customers/:username", cfg.CustomerHandler.GetCustomer)
	protected.DELETE("/customers/:username", cfg.CustomerHandler.DeleteCustomer)
	protected.GET("/merchants", cfg.MerchantHandler.GetAllMerchants)
	protected.GET("/merchants/:username", cfg.MerchantHandler.GetMerchant)

	return router
}
