package repository

import (
	"errors"

	"github.com/restobase/gin-resto-api/internal/models"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	// FindByProductID returns the product's recipe with items and their
	// ingredients attached, or (nil, nil) when the product has no recipe.
	// Runs on tx so the coordinator sees a snapshot consistent with its
	// locked reads.
	FindByProductID(tx *gorm.DB, productID uint) (*models.Recipe, error)
}

type recipeRepo struct {
	db *gorm.DB
}

func NewRecipeRepo(db *gorm.DB) RecipeRepository {
	return &recipeRepo{db}
}

func (r *recipeRepo) FindByProductID(tx *gorm.DB, productID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := tx.Preload("Items.Ingredient").
		Where("product_id = ?", productID).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
