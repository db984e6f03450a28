package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plantngo/backend/internal/services"
	"github.com/plantngo/backend/internal/types"
)

// VoucherPurchaseHandler exposes the customer-facing store surface:
// catalog, cart, owned vouchers, and purchase.
type VoucherPurchaseHandler struct {
	purchaseService services.VoucherPurchaseService
	customerService services.CustomerService
	merchantService services.MerchantService
	shopService     services.ShopService
}

func NewVoucherPurchaseHandler(
	purchaseService services.VoucherPurchaseService,
	customerService services.CustomerService,
	merchantService services.MerchantService,
	shopService services.ShopService,
) *VoucherPurchaseHandler {
	return &VoucherPurchaseHandler{
		purchaseService: purchaseService,
		customerService: customerService,
		merchantService: merchantService,
		shopService:     shopService,
	}
}

type VoucherPurchaseRequest struct {
	MerchantID uuid.UUID `json:"merchant_id" binding:"required"`
	VoucherID  uuid.UUID `json:"voucher_id" binding:"required"`
}

func (vh *VoucherPurchaseHandler) GetAllVouchers(c *gin.Context) {
	vouchers, err := vh.purchaseService.GetAllVouchers(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vouchers": vouchers})
}

func (vh *VoucherPurchaseHandler) GetAllOwnedVouchers(c *gin.Context) {
	vouchers, err := vh.purchaseService.GetAllOwnedVouchers(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vouchers": vouchers})
}

func (vh *VoucherPurchaseHandler) GetAllInCartVouchers(c *gin.Context) {
	vouchers, err := vh.purchaseService.GetAllInCartVouchers(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"vouchers": vouchers})
}

func (vh *VoucherPurchaseHandler) AddToCart(c *gin.Context) {
	customer, voucher, ok := vh.resolve(c)
	if !ok {
		return
	}
	if err := vh.purchaseService.AddToCart(c.Request.Context(), customer, voucher); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Added to cart."})
}

func (vh *VoucherPurchaseHandler) DeleteFromCart(c *gin.Context) {
	customer, voucher, ok := vh.resolve(c)
	if !ok {
		return
	}
	if err := vh.purchaseService.DeleteFromCart(c.Request.Context(), customer, voucher); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Deleted from cart."})
}

func (vh *VoucherPurchaseHandler) AddOwnedVoucher(c *gin.Context) {
	customer, voucher, ok := vh.resolve(c)
	if !ok {
		return
	}
	if err := vh.purchaseService.AddOwnedVoucher(c.Request.Context(), customer, voucher); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Successfully added."})
}

func (vh *VoucherPurchaseHandler) DeleteOwnedVoucher(c *gin.Context) {
	customer, voucher, ok := vh.resolve(c)
	if !ok {
		return
	}
	if err := vh.purchaseService.DeleteOwnedVoucher(c.Request.Context(), customer, voucher); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Successfully removed."})
}

func (vh *VoucherPurchaseHandler) PurchaseVouchers(c *gin.Context) {
	ctx := c.Request.Context()
	customer, err := vh.customerService.GetCustomerByUsername(ctx, c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return
	}
	order, err := vh.purchaseService.PurchaseVouchers(ctx, customer)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Purchase successful!", "order": order})
}

// resolve loads the customer from the path and the voucher from the
// request body, writing the error response itself on failure.
func (vh *VoucherPurchaseHandler) resolve(c *gin.Context) (*types.Customer, *types.Voucher, bool) {
	var req VoucherPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	ctx := c.Request.Context()
	customer, err := vh.customerService.GetCustomerByUsername(ctx, c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return nil, nil, false
	}
	merchant, err := vh.merchantService.GetMerchantByID(ctx, req.MerchantID)
	if err != nil {
		RespondError(c, err)
		return nil, nil, false
	}
	voucher, err := vh.shopService.GetVoucher(ctx, merchant, req.VoucherID)
	if err != nil {
		RespondError(c, err)
		return nil, nil, false
	}
	return customer, voucher, true
}
