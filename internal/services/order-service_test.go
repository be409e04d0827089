package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/repository"
)

// serviceStack wires the full order/stock pipeline against one database, the
// same way cmd/main does it.
type serviceStack struct {
	db          *gorm.DB
	orders      OrderService
	products    ProductService
	ingredients IngredientService
}

func setupServiceStack(t *testing.T) *serviceStack {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Ingredient{},
		&models.Product{},
		&models.Recipe{},
		&models.RecipeItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	require.NoError(t, err)

	productRepo := repository.NewProductRepo(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	products := NewProductService(db, productRepo, recipeRepo)
	ingredients := NewIngredientService(db, ingredientRepo)
	coordinator := NewStockCoordinator(products, ingredients, recipeRepo)
	orders := NewOrderService(db, orderRepo, coordinator)

	return &serviceStack{
		db:          db,
		orders:      orders,
		products:    products,
		ingredients: ingredients,
	}
}

func (s *serviceStack) createIngredient(t *testing.T, name string, stock float64) *models.Ingredient {
	ingredient := &models.Ingredient{Name: name, Unit: "g", Stock: stock}
	require.NoError(t, s.db.Create(ingredient).Error)
	return ingredient
}

func (s *serviceStack) createProduct(t *testing.T, name string, price float64) *models.Product {
	product := &models.Product{Name: name, Price: price, IsActive: true}
	require.NoError(t, s.db.Create(product).Error)
	return product
}

func (s *serviceStack) createManagedProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	product := &models.Product{Name: name, Price: price, IsActive: true, ManageStock: true, Stock: stock}
	require.NoError(t, s.db.Create(product).Error)
	return product
}

func (s *serviceStack) createRecipe(t *testing.T, productID uint, lines map[uint]float64) *models.Recipe {
	recipe := &models.Recipe{ProductID: productID}
	for ingredientID, qty := range lines {
		recipe.Items = append(recipe.Items, models.RecipeItem{IngredientID: ingredientID, Quantity: qty})
	}
	require.NoError(t, s.db.Create(recipe).Error)
	return recipe
}

func (s *serviceStack) ingredientStock(t *testing.T, id uint) float64 {
	var ingredient models.Ingredient
	require.NoError(t, s.db.First(&ingredient, id).Error)
	return ingredient.Stock
}

func (s *serviceStack) productStock(t *testing.T, id uint) int {
	var product models.Product
	require.NoError(t, s.db.First(&product, id).Error)
	return product.Stock
}

func (s *serviceStack) orderStatus(t *testing.T, id uint) models.OrderStatus {
	var order models.Order
	require.NoError(t, s.db.First(&order, id).Error)
	return order.Status
}

func TestCreateOrder(t *testing.T) {
	s := setupServiceStack(t)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{
			{ProductID: pizza.ID, Quantity: 2},
			{ProductID: soda.ID, Quantity: 1, Notes: "no ice"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.OrderTypeDineIn, order.Type)
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	assert.NotEmpty(t, order.Number)
	assert.Len(t, order.Items, 2)

	// Prices are copied from the catalog, not the request
	assert.Equal(t, 10.99, order.Items[0].Price)
	assert.Equal(t, 1.99, order.Items[1].Price)
	assert.Equal(t, 23.97, order.TotalAmount)

	// Creation never touches stock
	assert.Equal(t, 10, s.productStock(t, soda.ID))
}

func TestCreateOrderRoundsTotal(t *testing.T) {
	s := setupServiceStack(t)
	// 3 * 0.1 accumulates to 0.30000000000000004 in binary floating point
	mint := s.createProduct(t, "Complimentary Mint", 0.1)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: mint.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0.3, order.TotalAmount)
}

func TestCreateOrderValidation(t *testing.T) {
	s := setupServiceStack(t)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)

	_, err := s.orders.CreateOrder(CreateOrderRequest{})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: pizza.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: 9999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateOrderInactiveProduct(t *testing.T) {
	s := setupServiceStack(t)
	retired := &models.Product{Name: "Retired Special", Price: 5.00, IsActive: false}
	require.NoError(t, s.db.Create(retired).Error)

	_, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: retired.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrProductInactive)
}

func TestCompleteOrderConsumesRecipeIngredients(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 1000)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)
	s.createRecipe(t, pizza.ID, map[uint]float64{flour.ID: 250})

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: pizza.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	completed, err := s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, completed.Status)

	// 1000 - 2*250
	assert.Equal(t, 500.0, s.ingredientStock(t, flour.ID))
}

func TestCompleteOrderConsumesDirectStock(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, s.productStock(t, soda.ID))
}

func TestCompleteOrderUnmanagedProduct(t *testing.T) {
	s := setupServiceStack(t)
	water := s.createProduct(t, "Tap Water", 0.50)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: water.ID, Quantity: 5}},
	})
	require.NoError(t, err)

	completed, err := s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, completed.Status)
	assert.Equal(t, 0, s.productStock(t, water.ID))
}

func TestCompleteOrderInsufficientStock(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 100)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)
	s.createRecipe(t, pizza.ID, map[uint]float64{flour.ID: 150})

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	require.Error(t, err)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "ingredient", stockErr.Kind)
	assert.Equal(t, flour.ID, stockErr.ID)
	assert.Equal(t, 100.0, stockErr.Available)
	assert.Equal(t, 150.0, stockErr.Requested)

	// Nothing was written: stock and status are untouched
	assert.Equal(t, 100.0, s.ingredientStock(t, flour.ID))
	assert.Equal(t, models.OrderStatusPending, s.orderStatus(t, order.ID))
}

func TestCompleteOrderRollsBackAllItems(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)
	flour := s.createIngredient(t, "Flour", 100)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)
	s.createRecipe(t, pizza.ID, map[uint]float64{flour.ID: 150})

	// The soda line is satisfiable on its own; the pizza line is not. The
	// whole completion must fail without deducting either.
	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{
			{ProductID: soda.ID, Quantity: 2},
			{ProductID: pizza.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)

	assert.Equal(t, 10, s.productStock(t, soda.ID))
	assert.Equal(t, 100.0, s.ingredientStock(t, flour.ID))
	assert.Equal(t, models.OrderStatusPending, s.orderStatus(t, order.ID))
}

func TestCompleteOrderAggregatesDuplicateLines(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 5)

	// Two separate lines for the same product, 2+2, against stock of 5
	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{
			{ProductID: soda.ID, Quantity: 2},
			{ProductID: soda.ID, Quantity: 2, Notes: "second round"},
		},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, s.productStock(t, soda.ID))
}

func TestCompleteOrderIdempotent(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)

	// Second completion is a no-op, not a second deduction
	again, err := s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCompleted, again.Status)
	assert.Equal(t, 7, s.productStock(t, soda.ID))
}

func TestCompleteCancelledOrderRejected(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = s.orders.CancelOrder(order.ID)
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "complete", transitionErr.Operation)
	assert.Equal(t, models.OrderStatusCancelled, transitionErr.Status)
}

func TestCancelPendingOrder(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	cancelled, err := s.orders.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// A pending order never consumed anything, so nothing is restored
	assert.Equal(t, 10, s.productStock(t, soda.ID))
}

func TestCancelCompletedOrderRestoresStock(t *testing.T) {
	s := setupServiceStack(t)
	flour := s.createIngredient(t, "Flour", 1000)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)
	s.createRecipe(t, pizza.ID, map[uint]float64{flour.ID: 250})
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{
			{ProductID: pizza.ID, Quantity: 2},
			{ProductID: soda.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, s.ingredientStock(t, flour.ID))
	assert.Equal(t, 7, s.productStock(t, soda.ID))

	// Cancelling a completed order restores exactly what completion consumed
	cancelled, err := s.orders.CancelOrder(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 1000.0, s.ingredientStock(t, flour.ID))
	assert.Equal(t, 10, s.productStock(t, soda.ID))
}

func TestCancelCancelledOrderRejected(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = s.orders.CancelOrder(order.ID)
	require.NoError(t, err)

	_, err = s.orders.CancelOrder(order.ID)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "cancel", transitionErr.Operation)
}

func TestCompleteOrderCorruptedRecipe(t *testing.T) {
	s := setupServiceStack(t)
	pizza := s.createProduct(t, "Margherita Pizza", 10.99)

	// Recipe line pointing at an ingredient that does not exist
	recipe := &models.Recipe{
		ProductID: pizza.ID,
		Items:     []models.RecipeItem{{IngredientID: 9999, Quantity: 100}},
	}
	require.NoError(t, s.db.Create(recipe).Error)

	order, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(order.ID)
	var recipeErr *CorruptedRecipeError
	require.ErrorAs(t, err, &recipeErr)
	assert.Equal(t, recipe.ID, recipeErr.RecipeID)
	assert.Equal(t, uint(9999), recipeErr.IngredientID)

	assert.Equal(t, models.OrderStatusPending, s.orderStatus(t, order.ID))
}

func TestLifecycleUnknownOrder(t *testing.T) {
	s := setupServiceStack(t)

	_, err := s.orders.CompleteOrder(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = s.orders.CancelOrder(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = s.orders.GetOrderByID(42)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetAllOrdersFilterByStatus(t *testing.T) {
	s := setupServiceStack(t)
	soda := s.createManagedProduct(t, "Soda Can", 1.99, 10)

	first, err := s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = s.orders.CreateOrder(CreateOrderRequest{
		Items: []CreateOrderItem{{ProductID: soda.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = s.orders.CompleteOrder(first.ID)
	require.NoError(t, err)

	completed, err := s.orders.GetAllOrders(models.OrderStatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, first.ID, completed[0].ID)

	all, err := s.orders.GetAllOrders("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
