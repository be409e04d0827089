package services

import (
	"errors"
	"math"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/repository"
	"gorm.io/gorm"
)

// CreateOrderItem is one requested line of a new order.
type CreateOrderItem struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Notes     string `json:"notes"`
}

// CreateOrderRequest carries everything needed to open an order. Prices are
// never taken from the request; they are copied from the catalog at creation
// time.
type CreateOrderRequest struct {
	Type          models.OrderType     `json:"type"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CreatedBy     uint                 `json:"-"`
	Items         []CreateOrderItem    `json:"items" binding:"required"`
}

// OrderService owns the order lifecycle. Stock is touched in exactly two
// places: the transition into completed (consume) and the cancellation of a
// completed order (restore). Both run through the stock coordinator inside
// one database transaction with the status change.
type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*models.Order, error)
	GetAllOrders(status models.OrderStatus) ([]models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	CompleteOrder(id uint) (*models.Order, error)
	CancelOrder(id uint) (*models.Order, error)
}

type orderService struct {
	db          *gorm.DB
	orders      repository.OrderRepository
	coordinator *StockCoordinator
}

func NewOrderService(db *gorm.DB, orders repository.OrderRepository, coordinator *StockCoordinator) OrderService {
	return &orderService{
		db:          db,
		orders:      orders,
		coordinator: coordinator,
	}
}

// CreateOrder opens a pending order with its items fixed at creation. It does
// not touch stock; only completion does.
func (s *orderService) CreateOrder(req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	order := &models.Order{
		Number:        uuid.New().String(),
		Status:        models.OrderStatusPending,
		Type:          req.Type,
		PaymentMethod: req.PaymentMethod,
		CreatedBy:     req.CreatedBy,
	}
	if order.Type == "" {
		order.Type = models.OrderTypeDineIn
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = models.PaymentMethodCash
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var total float64
		for _, item := range req.Items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}
			if !product.IsActive {
				return ErrProductInactive
			}

			// Price is copied here and stays fixed for the order's lifetime.
			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price,
				Notes:     item.Notes,
			})
			total += product.Price * float64(item.Quantity)
		}
		order.TotalAmount = round2(total)

		return s.orders.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"number":   order.Number,
		"total":    order.TotalAmount,
		"items":    len(order.Items),
	}).Info("Order created")

	return order, nil
}

func (s *orderService) GetAllOrders(status models.OrderStatus) ([]models.Order, error) {
	return s.orders.FindAll(status)
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CompleteOrder marks the order completed after consuming stock for every
// line item. Completing an already-completed order is an idempotent no-op;
// completing a cancelled order is rejected. The status change and all stock
// writes commit together or not at all.
func (s *orderService) CompleteOrder(id uint) (*models.Order, error) {
	var completed *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		switch order.Status {
		case models.OrderStatusCancelled:
			return &InvalidTransitionError{OrderID: order.ID, Status: order.Status, Operation: "complete"}
		case models.OrderStatusCompleted:
			// Already completed: no second deduction.
			completed = order
			return nil
		}

		if err := s.coordinator.Apply(tx, order, directionConsume); err != nil {
			return err
		}
		if err := s.orders.UpdateStatus(tx, order.ID, models.OrderStatusCompleted); err != nil {
			return err
		}
		order.Status = models.OrderStatusCompleted
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("order_id", completed.ID).Info("Order completed")
	return completed, nil
}

// CancelOrder cancels the order. A completed order first has its consumption
// restored; a pending or in-progress order never consumed stock, so only its
// status changes. Cancelling an already-cancelled order is rejected.
func (s *orderService) CancelOrder(id uint) (*models.Order, error) {
	var cancelled *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByIDForUpdate(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if order.Status == models.OrderStatusCancelled {
			return &InvalidTransitionError{OrderID: order.ID, Status: order.Status, Operation: "cancel"}
		}

		if order.Status == models.OrderStatusCompleted {
			if err := s.coordinator.Apply(tx, order, directionRestore); err != nil {
				return err
			}
		}

		if err := s.orders.UpdateStatus(tx, order.ID, models.OrderStatusCancelled); err != nil {
			return err
		}
		order.Status = models.OrderStatusCancelled
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("order_id", cancelled.ID).Info("Order cancelled")
	return cancelled, nil
}

// round2 rounds a money amount to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
