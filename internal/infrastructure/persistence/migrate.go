package persistence

import (
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the database schema for all aggregates
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Product{},
		&inventory.StockEntry{},
		&sales.Sale{},
		&sales.SaleLineItem{},
	)
}
