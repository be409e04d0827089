package services

import (
	"errors"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/repository"
	"gorm.io/gorm"
)

// stockDirection is the sign applied to every quantity the coordinator
// touches: consume on completion, restore on cancellation of a completed
// order.
type stockDirection int

const (
	directionConsume stockDirection = -1
	directionRestore stockDirection = +1
)

// strategyKind is the closed set of ways a product interacts with stock.
type strategyKind int

const (
	// strategyDirectManaged: quantity on hand lives on the product row.
	strategyDirectManaged strategyKind = iota
	// strategyRecipeBased: each sold unit consumes the recipe's ingredients.
	strategyRecipeBased
	// strategyUnmanaged: sales never touch stock (unlimited product).
	strategyUnmanaged
)

// stockStrategy is a product's resolved consumption strategy. Resolved once
// per line item inside the active transaction and matched exhaustively, so
// completion and cancellation can never branch differently.
type stockStrategy struct {
	kind    strategyKind
	product *models.Product
	recipe  *models.Recipe
}

// StockCoordinator turns an order's line items into stock adjustments, as one
// all-or-nothing unit of work. Both the completion (consume) and the
// cancellation-reversal (restore) paths run through Apply; the only
// difference between them is the direction sign.
type StockCoordinator struct {
	products    ProductService
	ingredients IngredientService
	recipes     repository.RecipeRepository
}

func NewStockCoordinator(products ProductService, ingredients IngredientService, recipes repository.RecipeRepository) *StockCoordinator {
	return &StockCoordinator{
		products:    products,
		ingredients: ingredients,
		recipes:     recipes,
	}
}

// Apply applies the net stock effect of every item of the order inside tx.
// Any returned error must make the caller roll back the whole transaction:
// no partial deduction is ever committed.
//
// Rows are locked in a stable order (products ascending by id, then
// ingredients ascending by id) so two concurrent completions touching
// overlapping rows cannot deadlock, and the read-validate-write sequence on
// each row happens under its lock.
func (c *StockCoordinator) Apply(tx *gorm.DB, order *models.Order, direction stockDirection) error {
	qtyByProduct := make(map[uint]int, len(order.Items))
	for _, item := range order.Items {
		qtyByProduct[item.ProductID] += item.Quantity
	}

	productIDs := sortedKeys(qtyByProduct)

	// First pass: lock product rows, resolve each product's strategy and
	// apply direct-managed adjustments. Recipe consumption is accumulated
	// per ingredient and applied in the second pass.
	ingredientQty := make(map[uint]float64)
	for _, productID := range productIDs {
		strategy, err := c.resolveStrategy(tx, productID)
		if err != nil {
			return err
		}

		qty := qtyByProduct[productID]
		switch strategy.kind {
		case strategyDirectManaged:
			delta := int(direction) * qty
			if _, err := c.products.Adjust(tx, productID, delta); err != nil {
				return err
			}
		case strategyRecipeBased:
			for _, line := range strategy.recipe.Items {
				if line.IngredientID == 0 || line.Ingredient == nil {
					return &CorruptedRecipeError{
						RecipeID:     strategy.recipe.ID,
						RecipeItemID: line.ID,
						IngredientID: line.IngredientID,
					}
				}
				ingredientQty[line.IngredientID] += line.Quantity * float64(qty)
			}
		case strategyUnmanaged:
			// Unlimited product, nothing to adjust.
		}
	}

	// Second pass: lock ingredient rows in ascending id order and apply the
	// accumulated deltas.
	for _, ingredientID := range sortedKeys(ingredientQty) {
		delta := float64(direction) * ingredientQty[ingredientID]
		if _, err := c.ingredients.Adjust(tx, ingredientID, delta); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"order_id":  order.ID,
		"direction": int(direction),
		"products":  len(productIDs),
	}).Debug("Stock adjustments applied")

	return nil
}

// resolveStrategy loads the product fresh inside tx (taking its row lock) and
// classifies it into exactly one strategy.
func (c *StockCoordinator) resolveStrategy(tx *gorm.DB, productID uint) (stockStrategy, error) {
	product, err := c.products.GetForUpdate(tx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stockStrategy{}, ErrProductNotFound
		}
		return stockStrategy{}, err
	}

	if product.ManageStock {
		return stockStrategy{kind: strategyDirectManaged, product: product}, nil
	}

	recipe, err := c.recipes.FindByProductID(tx, productID)
	if err != nil {
		return stockStrategy{}, err
	}
	if recipe != nil && len(recipe.Items) > 0 {
		return stockStrategy{kind: strategyRecipeBased, product: product, recipe: recipe}, nil
	}

	return stockStrategy{kind: strategyUnmanaged, product: product}, nil
}

// sortedKeys returns the map keys in ascending order. Lock acquisition must
// follow a stable key order across concurrent transactions.
func sortedKeys[V any](m map[uint]V) []uint {
	keys := make([]uint, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
