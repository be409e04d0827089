package database

import (
	"github.com/restobase/gin-resto-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every persisted model.
// Order matters only for readability; gorm resolves the references.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Product{},
		&models.Recipe{},
		&models.RecipeItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OAuthClient{},
		&models.OAuthCode{},
		&models.OAuthToken{},
	)
}
