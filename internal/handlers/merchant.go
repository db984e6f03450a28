package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/plantngo/backend/internal/services"
)

type MerchantHandler struct {
	merchantService services.MerchantService
}

func NewMerchantHandler(merchantService services.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

func (mh *MerchantHandler) GetAllMerchants(c *gin.Context) {
	merchants, err := mh.merchantService.FindAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"merchants": merchants})
}

func (mh *MerchantHandler) GetMerchant(c *gin.Context) {
	merchant, err := mh.merchantService.GetMerchantByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"merchant": merchant})
}
