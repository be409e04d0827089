package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restobase/gin-resto-api/internal/models"
)

func TestAdjustStockDelivery(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 500)

	adjusted, err := s.ingredients.AdjustStock(flour.ID, 2500)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, adjusted.Stock)
	assert.Equal(t, 3000.0, s.ingredientStock(t, flour.ID))
}

func TestAdjustStockWaste(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 500)

	adjusted, err := s.ingredients.AdjustStock(flour.ID, -200)
	require.NoError(t, err)
	assert.Equal(t, 300.0, adjusted.Stock)
}

func TestAdjustStockBelowZeroRejected(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 100)

	_, err := s.ingredients.AdjustStock(flour.ID, -150)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "ingredient", stockErr.Kind)
	assert.Equal(t, 100.0, stockErr.Available)
	assert.Equal(t, 150.0, stockErr.Requested)

	// Rejection leaves the row untouched
	assert.Equal(t, 100.0, s.ingredientStock(t, flour.ID))
}

func TestAdjustStockUnknownIngredient(t *testing.T) {
	s := setupServiceStack(t)

	_, err := s.ingredients.AdjustStock(42, 10)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestGetLowStockIngredients(t *testing.T) {
	s := setupServiceStack(t)

	low := &models.Ingredient{Name: "Mozzarella", Unit: "g", Stock: 400, MinStock: 500}
	atThreshold := &models.Ingredient{Name: "Tomato Sauce", Unit: "ml", Stock: 800, MinStock: 800}
	healthy := &models.Ingredient{Name: "Flour", Unit: "g", Stock: 10000, MinStock: 2000}
	for _, ingredient := range []*models.Ingredient{low, atThreshold, healthy} {
		require.NoError(t, s.db.Create(ingredient).Error)
	}

	result, err := s.ingredients.GetLowStockIngredients()
	require.NoError(t, err)
	require.Len(t, result, 2)

	names := []string{result[0].Name, result[1].Name}
	assert.Contains(t, names, "Mozzarella")
	assert.Contains(t, names, "Tomato Sauce")
	for _, ingredient := range result {
		assert.True(t, ingredient.BelowMinStock())
	}
}

func TestGetProductRecipe(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 1000)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)
	s.createRecipe(t, pizza.ID, map[uint]float64{flour.ID: 250})
	water := s.createProduct(t, "Tap Water", 0.50)

	recipe, err := s.products.GetProductRecipe(pizza.ID)
	require.NoError(t, err)
	require.NotNil(t, recipe)
	require.Len(t, recipe.Items, 1)
	assert.Equal(t, flour.ID, recipe.Items[0].IngredientID)
	assert.Equal(t, 250.0, recipe.Items[0].Quantity)
	require.NotNil(t, recipe.Items[0].Ingredient)
	assert.Equal(t, "Flour", recipe.Items[0].Ingredient.Name)

	// A product without a recipe yields nil, not an error
	recipe, err = s.products.GetProductRecipe(water.ID)
	require.NoError(t, err)
	assert.Nil(t, recipe)

	_, err = s.products.GetProductRecipe(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
