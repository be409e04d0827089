package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/services"
)

// IngredientController handles HTTP requests for the ingredient inventory
type IngredientController interface {
	// CreateIngredient registers a new ingredient
	CreateIngredient(c *gin.Context)
	// GetAllIngredients lists all ingredients
	GetAllIngredients(c *gin.Context)
	// GetLowStockIngredients lists ingredients at or below their threshold
	GetLowStockIngredients(c *gin.Context)
	// AdjustStock applies a manual stock correction
	AdjustStock(c *gin.Context)
}

type ingredientController struct {
	service services.IngredientService
}

// NewIngredientController creates a new instance of IngredientController
func NewIngredientController(service services.IngredientService) *ingredientController {
	return &ingredientController{service: service}
}

// CreateIngredient godoc
// @Summary Create an ingredient
// @Description Register a raw material with its unit and low-stock threshold
// @Tags ingredients
// @Accept json
// @Produce json
// @Param ingredient body models.Ingredient true "Ingredient object"
// @Success 201 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/ingredients [post]
func (c *ingredientController) CreateIngredient(ctx *gin.Context) {
	var ingredient models.Ingredient
	if err := ctx.ShouldBindJSON(&ingredient); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}
	if ingredient.Name == "" {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Ingredient name is required"))
		return
	}

	if err := c.service.CreateIngredient(&ingredient); err != nil {
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrConflict, "Ingredient creation failed"))
		return
	}
	ctx.JSON(http.StatusCreated, ingredient)
}

// GetAllIngredients godoc
// @Summary Get all ingredients
// @Description List all ingredients with their stock levels
// @Tags ingredients
// @Accept json
// @Produce json
// @Success 200 {array} models.Ingredient
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/ingredients [get]
func (c *ingredientController) GetAllIngredients(ctx *gin.Context) {
	ingredients, err := c.service.GetAllIngredients()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve ingredients"))
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// GetLowStockIngredients godoc
// @Summary Get low-stock ingredients
// @Description List ingredients at or below their minimum stock threshold
// @Tags ingredients
// @Accept json
// @Produce json
// @Success 200 {array} models.Ingredient
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/ingredients/low-stock [get]
func (c *ingredientController) GetLowStockIngredients(ctx *gin.Context) {
	ingredients, err := c.service.GetLowStockIngredients()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve ingredients"))
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// AdjustStock godoc
// @Summary Adjust ingredient stock
// @Description Apply a manual stock correction (delivery, waste, recount); fails if the result would be negative
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Param adjustment body object{delta=number} true "Signed quantity in the ingredient's unit"
// @Success 200 {object} models.Ingredient
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/admin/ingredients/{id}/adjust [post]
func (c *ingredientController) AdjustStock(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req struct {
		Delta float64 `json:"delta" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	ingredient, err := c.service.AdjustStock(id, req.Delta)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}
