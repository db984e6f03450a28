package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plantngo/backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegistrationRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	UserType string `json:"user_type" binding:"required,oneof=customer merchant"`
	Company  string `json:"company"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	UserType string `json:"user_type" binding:"required,oneof=customer merchant"`
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	switch req.UserType {
	case services.UserTypeCustomer:
		customer, err := ah.authService.RegisterCustomer(ctx, req.Username, req.Email, req.Password)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, gin.H{"customer": customer})
	case services.UserTypeMerchant:
		merchant, err := ah.authService.RegisterMerchant(ctx, req.Username, req.Email, req.Password, req.Company)
		if err != nil {
			RespondError(c, err)
			return
		}
		RespondOK(c, gin.H{"merchant": merchant})
	}
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := ah.authService.Login(c.Request.Context(), req.Username, req.Password, req.UserType)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"access_token": token})
}
