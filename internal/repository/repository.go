// Package repository holds the persistence layer. Read-for-update and save
// operations take an explicit *gorm.DB so they can participate in a
// transaction opened by the caller; plain reads use the repository's own
// connection.
package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate applies a pessimistic row lock to the query. SQLite rejects the
// FOR UPDATE syntax and serializes writers at the database level anyway, so
// the clause is only added on other dialects (postgres in production).
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
