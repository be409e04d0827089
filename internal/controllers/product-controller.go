package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/services"
)

// ProductController handles HTTP requests for the product catalog
type ProductController interface {
	// GetAllProducts lists products
	GetAllProducts(c *gin.Context)
	// GetProductByID retrieves a product by its ID
	GetProductByID(c *gin.Context)
	// GetProductRecipe retrieves a product's recipe, if any
	GetProductRecipe(c *gin.Context)
}

type productController struct {
	service services.ProductService
}

// NewProductController creates a new instance of ProductController
func NewProductController(service services.ProductService) *productController {
	return &productController{service: service}
}

// GetAllProducts godoc
// @Summary Get all products
// @Description List catalog products; pass active=true to hide inactive ones
// @Tags products
// @Accept json
// @Produce json
// @Param active query bool false "Only active products"
// @Success 200 {array} models.Product
// @Failure 500 {object} models.APIError
// @Router /api/v1/public/products [get]
func (c *productController) GetAllProducts(ctx *gin.Context) {
	activeOnly := ctx.Query("active") == "true"

	products, err := c.service.GetAllProducts(activeOnly)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve products"))
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get a single product, with its recipe when it has one
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/public/products/{id} [get]
func (c *productController) GetProductByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	product, err := c.service.GetProductByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// GetProductRecipe godoc
// @Summary Get a product's recipe
// @Description Get the recipe and its ingredient lines for a product; 404 when the product has none
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/products/{id}/recipe [get]
func (c *productController) GetProductRecipe(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	recipe, err := c.service.GetProductRecipe(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	if recipe == nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "Product has no recipe"))
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}
