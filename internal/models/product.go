package models

import (
	"time"
)

// Product is a sellable catalog entry.
//
// Stock handling depends on ManageStock:
//   - ManageStock true: Stock on this row is the source of truth and is
//     decremented on order completion.
//   - ManageStock false + Recipe present: completion consumes the recipe's
//     ingredients instead; Stock is meaningless.
//   - neither: the product is unlimited (e.g. plain water) and sales never
//     touch stock.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Cost        float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"cost"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
	ManageStock bool      `gorm:"not null;default:false" json:"manage_stock"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Recipe      *Recipe   `gorm:"foreignKey:ProductID" json:"recipe,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
