package models

import (
	"time"
)

// Ingredient is a raw material consumed through recipes. Stock is a decimal
// quantity in the ingredient's own unit (g, ml, pcs, ...).
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Unit      string    `gorm:"type:varchar(20);not null;default:'pcs'" json:"unit"`
	Stock     float64   `gorm:"not null;default:0" json:"stock"`
	MinStock  float64   `gorm:"not null;default:0" json:"min_stock"`
	Cost      *float64  `gorm:"type:decimal(10,2)" json:"cost,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// BelowMinStock reports whether the ingredient needs restocking.
func (i *Ingredient) BelowMinStock() bool {
	return i.Stock <= i.MinStock
}
