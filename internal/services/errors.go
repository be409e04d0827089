package services

import (
	"errors"
	"fmt"

	"github.com/restobase/gin-resto-api/internal/models"
)

// Sentinel errors for missing or unusable entities. Controllers translate
// these into 404/422 responses.
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrProductInactive    = errors.New("product is inactive")
	ErrEmptyOrder         = errors.New("order must contain at least one item")
	ErrInvalidQuantity    = errors.New("item quantity must be greater than zero")
)

// InvalidTransitionError means the order's current status does not permit the
// requested lifecycle operation.
type InvalidTransitionError struct {
	OrderID   uint
	Status    models.OrderStatus
	Operation string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s order %d in status %q", e.Operation, e.OrderID, e.Status)
}

// InsufficientStockError means a consumption would drive a product's or
// ingredient's stock below zero. The whole unit of work is rolled back when
// this is returned; the caller may retry after adjusting quantities or stock.
type InsufficientStockError struct {
	Kind      string // "product" or "ingredient"
	ID        uint
	Name      string
	Available float64
	Requested float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s %q: available %g, requested %g",
		e.Kind, e.Name, e.Available, e.Requested)
}

// CorruptedRecipeError means a recipe line references an ingredient that does
// not exist. This is a data-integrity fault, not a user error, and surfaces
// as a server-side failure.
type CorruptedRecipeError struct {
	RecipeID     uint
	RecipeItemID uint
	IngredientID uint
}

func (e *CorruptedRecipeError) Error() string {
	return fmt.Sprintf("recipe %d item %d references missing ingredient %d",
		e.RecipeID, e.RecipeItemID, e.IngredientID)
}
