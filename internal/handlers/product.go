package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plantngo/backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

type ProductIngredientRequest struct {
	Name       string  `json:"name" binding:"required"`
	ServingQty float64 `json:"serving_qty" binding:"required,gt=0"`
}

func (ph *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := ph.productService.GetAllProducts(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"products": products})
}

func (ph *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	product, err := ph.productService.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ph *ProductHandler) GetAllProductIngredients(c *gin.Context) {
	associations, err := ph.productService.GetAllProductIngredients(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"product_ingredients": associations})
}

func (ph *ProductHandler) AddProductIngredient(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	var req ProductIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	association, err := ph.productService.AddProductIngredient(c.Request.Context(), productID, req.Name, req.ServingQty)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"product_ingredient": association})
}

func (ph *ProductHandler) UpdateProductIngredient(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	var req ProductIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	association, err := ph.productService.UpdateProductIngredient(c.Request.Context(), productID, req.Name, req.ServingQty)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"product_ingredient": association})
}

func (ph *ProductHandler) DeleteProductIngredient(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}
	name := c.Param("ingredientName")
	if err := ph.productService.DeleteProductIngredient(c.Request.Context(), productID, name); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "Successfully removed."})
}

func parseProductID(c *gin.Context) (uuid.UUID, bool) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return uuid.Nil, false
	}
	return productID, true
}
