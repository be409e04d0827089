package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order.
// Allowed transitions: pending -> in_progress -> completed,
// pending/in_progress -> cancelled, completed -> cancelled (with stock reversal).
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderType tells where the order is served.
type OrderType string

const (
	OrderTypeDineIn   OrderType = "dine_in"
	OrderTypeTakeaway OrderType = "takeaway"
	OrderTypeDelivery OrderType = "delivery"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodQRIS PaymentMethod = "qris"
)

// Order is a customer transaction composed of line items.
// TotalAmount is computed once at creation from the products' prices at that
// moment and never recalculated afterwards.
type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Number        string        `gorm:"uniqueIndex;not null" json:"number"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Type          OrderType     `gorm:"type:varchar(20);not null;default:'dine_in'" json:"type"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	TotalAmount   float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CreatedBy     uint          `gorm:"index" json:"created_by"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

// OrderItem is one line of an order. Price is a point-in-time copy of the
// product price at order creation, immutable thereafter.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
