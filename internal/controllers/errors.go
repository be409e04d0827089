package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/services"
)

// respondServiceError maps core service errors to HTTP responses.
// InsufficientStock and InvalidTransition are client-actionable conflicts;
// CorruptedRecipe is a data-integrity fault reported as a server error.
func respondServiceError(ctx *gin.Context, err error) {
	var transitionErr *services.InvalidTransitionError
	var stockErr *services.InsufficientStockError
	var recipeErr *services.CorruptedRecipeError

	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, err.Error()))
	case errors.Is(err, services.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, err.Error()))
	case errors.Is(err, services.ErrIngredientNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, err.Error()))
	case errors.Is(err, services.ErrProductInactive):
		ctx.JSON(http.StatusUnprocessableEntity, models.NewAPIError(models.ErrProductInactive, err.Error()))
	case errors.Is(err, services.ErrEmptyOrder), errors.Is(err, services.ErrInvalidQuantity):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, err.Error()))
	case errors.As(err, &transitionErr):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrInvalidOrderStatus, err.Error(), map[string]interface{}{
			"order_id": transitionErr.OrderID,
			"status":   transitionErr.Status,
		}))
	case errors.As(err, &stockErr):
		ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrInsufficientStock, err.Error(), map[string]interface{}{
			"kind":      stockErr.Kind,
			"id":        stockErr.ID,
			"name":      stockErr.Name,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		}))
	case errors.As(err, &recipeErr):
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrCorruptedRecipe, err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "unexpected error"))
	}
}
