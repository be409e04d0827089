package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/services"
)

// OrderController handles HTTP requests for the order lifecycle
type OrderController interface {
	// CreateOrder opens a new pending order
	CreateOrder(c *gin.Context)
	// GetAllOrders lists orders, optionally filtered by status
	GetAllOrders(c *gin.Context)
	// GetOrderByID retrieves a single order with its items
	GetOrderByID(c *gin.Context)
	// CompleteOrder marks an order completed, consuming stock
	CompleteOrder(c *gin.Context)
	// CancelOrder cancels an order, restoring stock if it was completed
	CancelOrder(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) *orderController {
	return &orderController{service: service}
}

// CreateOrder godoc
// @Summary Create an order
// @Description Open a new pending order; prices are copied from the catalog and stock is not touched
// @Tags orders
// @Accept json
// @Produce json
// @Param order body services.CreateOrderRequest true "Order payload"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 422 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders [post]
func (c *orderController) CreateOrder(ctx *gin.Context) {
	var req services.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body"))
		return
	}

	if userID, exists := ctx.Get("userID"); exists {
		if id, ok := userID.(uint); ok {
			req.CreatedBy = id
		}
	}

	order, err := c.service.CreateOrder(req)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetAllOrders godoc
// @Summary List orders
// @Description List orders with their items, optionally filtered by status
// @Tags orders
// @Accept json
// @Produce json
// @Param status query string false "Filter by status (pending, in_progress, completed, cancelled)"
// @Success 200 {array} models.Order
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders [get]
func (c *orderController) GetAllOrders(ctx *gin.Context) {
	status := models.OrderStatus(ctx.Query("status"))

	orders, err := c.service.GetAllOrders(status)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve orders"))
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// GetOrderByID godoc
// @Summary Get order by ID
// @Description Get a single order with its items
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id} [get]
func (c *orderController) GetOrderByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.service.GetOrderByID(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// CompleteOrder godoc
// @Summary Complete an order
// @Description Mark an order completed; every line item's stock effect is applied atomically
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id}/complete [post]
func (c *orderController) CompleteOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.service.CompleteOrder(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Description Cancel an order; a completed order has its stock consumption restored first
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/protected/orders/{id}/cancel [post]
func (c *orderController) CancelOrder(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	order, err := c.service.CancelOrder(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// parseIDParam reads the :id path parameter as an unsigned integer.
func parseIDParam(ctx *gin.Context) (uint, bool) {
	raw, exists := ctx.Params.Get("id")
	if !exists {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Missing id parameter"))
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid id format"))
		return 0, false
	}
	return uint(id), true
}
