package services

import (
	"errors"

	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/repository"
	"gorm.io/gorm"
)

// IngredientService is the inventory ledger: it owns ingredient stock
// quantities and guards the non-negative invariant on every adjustment.
type IngredientService interface {
	CreateIngredient(ingredient *models.Ingredient) error
	GetAllIngredients() ([]models.Ingredient, error)
	GetIngredientByID(id uint) (*models.Ingredient, error)
	GetLowStockIngredients() ([]models.Ingredient, error)
	// AdjustStock applies delta (positive or negative) in its own
	// transaction. Used for manual corrections such as deliveries or waste.
	AdjustStock(id uint, delta float64) (*models.Ingredient, error)
	// Adjust applies delta inside the caller's transaction, locking the
	// ingredient row first. Fails with InsufficientStockError, without
	// writing, if the result would be negative.
	Adjust(tx *gorm.DB, id uint, delta float64) (*models.Ingredient, error)
}

type ingredientService struct {
	db   *gorm.DB
	repo repository.IngredientRepository
}

func NewIngredientService(db *gorm.DB, repo repository.IngredientRepository) IngredientService {
	return &ingredientService{db: db, repo: repo}
}

func (s *ingredientService) CreateIngredient(ingredient *models.Ingredient) error {
	return s.repo.Create(ingredient)
}

func (s *ingredientService) GetAllIngredients() ([]models.Ingredient, error) {
	return s.repo.FindAll()
}

func (s *ingredientService) GetIngredientByID(id uint) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) GetLowStockIngredients() ([]models.Ingredient, error) {
	return s.repo.FindBelowMinStock()
}

func (s *ingredientService) AdjustStock(id uint, delta float64) (*models.Ingredient, error) {
	var adjusted *models.Ingredient
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		adjusted, err = s.Adjust(tx, id, delta)
		return err
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

func (s *ingredientService) Adjust(tx *gorm.DB, id uint, delta float64) (*models.Ingredient, error) {
	ingredient, err := s.repo.FindByIDForUpdate(tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrIngredientNotFound
	}
	if err != nil {
		return nil, err
	}

	newStock := ingredient.Stock + delta
	if newStock < 0 {
		return nil, &InsufficientStockError{
			Kind:      "ingredient",
			ID:        ingredient.ID,
			Name:      ingredient.Name,
			Available: ingredient.Stock,
			Requested: -delta,
		}
	}

	if err := s.repo.UpdateStock(tx, id, newStock); err != nil {
		return nil, err
	}
	ingredient.Stock = newStock
	return ingredient, nil
}
