package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/plantngo/backend/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (ch *CustomerHandler) GetAllCustomers(c *gin.Context) {
	customers, err := ch.customerService.FindAll(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"customers": customers})
}

func (ch *CustomerHandler) GetCustomer(c *gin.Context) {
	customer, err := ch.customerService.GetCustomerByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"customer": customer})
}

func (ch *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := ch.customerService.DeleteCustomer(c.Request.Context(), c.Param("username")); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Account deleted."})
}
