package models

import (
	"time"
)

// Recipe maps a product to the ingredient quantities one unit consumes.
// The unique index on ProductID enforces the zero-or-one recipe invariant.
type Recipe struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	ProductID uint         `gorm:"uniqueIndex;not null" json:"product_id"`
	Items     []RecipeItem `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// RecipeItem is one ingredient line of a recipe. Quantity is expressed in the
// ingredient's own base unit, so no per-line unit conversion is needed.
type RecipeItem struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	RecipeID     uint        `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint        `gorm:"not null;index" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Quantity     float64     `gorm:"not null" json:"quantity"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
