package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// StockEntry represents a quantity of a product held in stock.
// It is the aggregate root for stock operations. A product may have
// several entries; consolidated reads sum them per product.
type StockEntry struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity    int64     `gorm:"not null;default:0"`
	LastUpdated time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockEntry) TableName() string {
	return "stock_entries"
}

// NewStockEntry creates a new stock entry for a product
func NewStockEntry(productID uuid.UUID, quantity int64) (*StockEntry, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	entry := &StockEntry{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Quantity:          quantity,
		LastUpdated:       time.Now(),
	}

	entry.AddDomainEvent(NewStockAddedEvent(entry, quantity))

	return entry, nil
}

// AddQuantity merges an additional quantity into this entry
func (e *StockEntry) AddQuantity(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}

	e.Quantity += quantity
	e.LastUpdated = time.Now()
	e.UpdatedAt = e.LastUpdated
	e.IncrementVersion()

	e.AddDomainEvent(NewStockAddedEvent(e, quantity))

	return nil
}

// Decrement removes a quantity from this entry. The quantity on hand
// never goes below zero; a shortfall is a consistency violation because
// availability was already checked when the sale completed.
func (e *StockEntry) Decrement(quantity int64) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if e.Quantity < quantity {
		return shared.ErrConsistencyViolation
	}

	e.Quantity -= quantity
	e.LastUpdated = time.Now()
	e.UpdatedAt = e.LastUpdated
	e.IncrementVersion()

	e.AddDomainEvent(NewStockDecrementedEvent(e, quantity))

	return nil
}

// IsDepleted returns true when no quantity remains in this entry
func (e *StockEntry) IsDepleted() bool {
	return e.Quantity == 0
}
