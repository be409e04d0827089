package repository

import (
	"github.com/restobase/gin-resto-api/internal/models"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	Create(ingredient *models.Ingredient) error
	FindAll() ([]models.Ingredient, error)
	FindByID(id uint) (*models.Ingredient, error)
	// FindByIDForUpdate loads an ingredient inside tx holding a row lock
	// until the transaction ends.
	FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Ingredient, error)
	FindBelowMinStock() ([]models.Ingredient, error)
	UpdateStock(tx *gorm.DB, id uint, newStock float64) error
}

type ingredientRepo struct {
	db *gorm.DB
}

func NewIngredientRepo(db *gorm.DB) IngredientRepository {
	return &ingredientRepo{db}
}

func (r *ingredientRepo) Create(ingredient *models.Ingredient) error {
	return r.db.Create(ingredient).Error
}

func (r *ingredientRepo) FindAll() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Order("name asc").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) FindByID(id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.First(&ingredient, id).Error
	return &ingredient, err
}

func (r *ingredientRepo) FindByIDForUpdate(tx *gorm.DB, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := forUpdate(tx).First(&ingredient, id).Error
	return &ingredient, err
}

func (r *ingredientRepo) FindBelowMinStock() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.Where("stock <= min_stock").Order("name asc").Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) UpdateStock(tx *gorm.DB, id uint, newStock float64) error {
	return tx.Model(&models.Ingredient{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}
