package repository

import (
	"github.com/restobase/gin-resto-api/internal/models"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(tx *gorm.DB, order *models.Order) error
	FindAll(status models.OrderStatus) ([]models.Order, error)
	FindByID(id uint) (*models.Order, error)
	// FindByIDForUpdate loads an order with its items inside tx, holding a
	// row lock on the order so concurrent lifecycle calls serialize.
	FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Order, error)
	UpdateStatus(tx *gorm.DB, id uint, status models.OrderStatus) error
}

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepo(db *gorm.DB) OrderRepository {
	return &orderRepo{db}
}

func (r *orderRepo) Create(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

func (r *orderRepo) FindAll(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Preload("Items").Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&orders).Error
	return orders, err
}

func (r *orderRepo) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items.Product").First(&order, id).Error
	return &order, err
}

func (r *orderRepo) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	err := forUpdate(tx).Preload("Items").First(&order, id).Error
	return &order, err
}

func (r *orderRepo) UpdateStatus(tx *gorm.DB, id uint, status models.OrderStatus) error {
	return tx.Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
