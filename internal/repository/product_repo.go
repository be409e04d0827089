package repository

import (
	"github.com/restobase/gin-resto-api/internal/models"
	"gorm.io/gorm"
)

type ProductRepository interface {
	FindAll(activeOnly bool) ([]models.Product, error)
	FindByID(id uint) (*models.Product, error)
	// FindByIDForUpdate loads a product inside tx holding a row lock until
	// the transaction ends.
	FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Product, error)
	UpdateStock(tx *gorm.DB, id uint, newStock int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) FindAll(activeOnly bool) ([]models.Product, error) {
	var products []models.Product
	q := r.db.Preload("Recipe.Items.Ingredient").Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Recipe.Items.Ingredient").First(&product, id).Error
	return &product, err
}

func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := forUpdate(tx).First(&product, id).Error
	return &product, err
}

func (r *productRepo) UpdateStock(tx *gorm.DB, id uint, newStock int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}
