package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plantngo/backend/internal/services"
	"github.com/plantngo/backend/internal/types"
)

// ShopHandler is the merchant-side management surface: vouchers,
// products, and the ingredient catalog.
type ShopHandler struct {
	shopService     services.ShopService
	merchantService services.MerchantService
}

func NewShopHandler(shopService services.ShopService, merchantService services.MerchantService) *ShopHandler {
	return &ShopHandler{shopService: shopService, merchantService: merchantService}
}

type VoucherRequest struct {
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
}

type ProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
}

type IngredientRequest struct {
	Name            string  `json:"name" binding:"required"`
	EmissionPerGram float64 `json:"emission_per_gram" binding:"gte=0"`
}

func (sh *ShopHandler) CreateVoucher(c *gin.Context) {
	merchant, ok := sh.resolveMerchant(c)
	if !ok {
		return
	}
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voucher, err := sh.shopService.CreateVoucher(c.Request.Context(), merchant, req.Description, req.Price)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"voucher": voucher})
}

func (sh *ShopHandler) GetMerchantVouchers(c *gin.Context) {
	merchant, ok := sh.resolveMerchant(c)
	if !ok {
		return
	}
	vouchers, err := sh.shopService.GetVouchersByMerchant(c.Request.Context(), merchant)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vouchers": vouchers})
}

func (sh *ShopHandler) UpdateVoucher(c *gin.Context) {
	merchant, ok := sh.resolveMerchant(c)
	if !ok {
		return
	}
	voucherID, ok := parseVoucherID(c)
	if !ok {
		return
	}
	var req VoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	voucher, err := sh.shopService.UpdateVoucher(c.Request.Context(), merchant, voucherID, req.Description, req.Price)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"voucher": voucher})
}

func (sh *ShopHandler) DeleteVoucher(c *gin.Context) {
	merchant, ok := sh.resolveMerchant(c)
	if !ok {
		return
	}
	voucherID, ok := parseVoucherID(c)
	if !ok {
		return
	}
	if err := sh.shopService.DeleteVoucher(c.Request.Context(), merchant, voucherID); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Voucher deleted."})
}

func (sh *ShopHandler) CreateProduct(c *gin.Context) {
	merchant, ok := sh.resolveMerchant(c)
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := sh.shopService.CreateProduct(c.Request.Context(), merchant, req.Name, req.Price)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (sh *ShopHandler) GetMerchantProducts(c *gin.Context) {
	merchant, ok := sh.resolveMerchant(c)
	if !ok {
		return
	}
	products, err := sh.shopService.GetProductsByMerchant(c.Request.Context(), merchant)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"products": products})
}

func (sh *ShopHandler) CreateIngredient(c *gin.Context) {
	var req IngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := sh.shopService.CreateIngredient(c.Request.Context(), req.Name, req.EmissionPerGram)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"ingredient": ingredient})
}

func (sh *ShopHandler) resolveMerchant(c *gin.Context) (*types.Merchant, bool) {
	merchant, err := sh.merchantService.GetMerchantByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return nil, false
	}
	return merchant, true
}

func parseVoucherID(c *gin.Context) (uuid.UUID, bool) {
	voucherID, err := uuid.Parse(c.Param("voucherId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid voucher id"})
		return uuid.Nil, false
	}
	return voucherID, true
}
