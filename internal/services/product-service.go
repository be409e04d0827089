package services

import (
	"errors"

	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/repository"
	"gorm.io/gorm"
)

// ProductService provides catalog reads and the direct-managed stock store.
// Adjust mirrors the ingredient ledger's contract, scoped to Product.Stock;
// it only ever applies to products with ManageStock set.
type ProductService interface {
	GetAllProducts(activeOnly bool) ([]models.Product, error)
	GetProductByID(id uint) (*models.Product, error)
	GetProductRecipe(productID uint) (*models.Recipe, error)
	// GetForUpdate loads a product inside tx holding its row lock.
	GetForUpdate(tx *gorm.DB, id uint) (*models.Product, error)
	// Adjust applies delta to the product's stock inside the caller's
	// transaction. Fails with InsufficientStockError, without writing, if
	// the result would be negative.
	Adjust(tx *gorm.DB, id uint, delta int) (*models.Product, error)
}

type productService struct {
	db      *gorm.DB
	repo    repository.ProductRepository
	recipes repository.RecipeRepository
}

func NewProductService(db *gorm.DB, repo repository.ProductRepository, recipes repository.RecipeRepository) ProductService {
	return &productService{db: db, repo: repo, recipes: recipes}
}

func (s *productService) GetAllProducts(activeOnly bool) ([]models.Product, error) {
	return s.repo.FindAll(activeOnly)
}

func (s *productService) GetProductByID(id uint) (*models.Product, error) {
	product, err := s.repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductRecipe(productID uint) (*models.Recipe, error) {
	if _, err := s.GetProductByID(productID); err != nil {
		return nil, err
	}
	return s.recipes.FindByProductID(s.db, productID)
}

func (s *productService) GetForUpdate(tx *gorm.DB, id uint) (*models.Product, error) {
	return s.repo.FindByIDForUpdate(tx, id)
}

func (s *productService) Adjust(tx *gorm.DB, id uint, delta int) (*models.Product, error) {
	product, err := s.repo.FindByIDForUpdate(tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	newStock := product.Stock + delta
	if newStock < 0 {
		return nil, &InsufficientStockError{
			Kind:      "product",
			ID:        product.ID,
			Name:      product.Name,
			Available: float64(product.Stock),
			Requested: float64(-delta),
		}
	}

	if err := s.repo.UpdateStock(tx, id, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	return product, nil
}
