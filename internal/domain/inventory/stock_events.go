package inventory

import (
	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeStockEntry = "StockEntry"

// Event type constants
const (
	EventTypeStockAdded       = "StockAdded"
	EventTypeStockDecremented = "StockDecremented"
)

// StockAddedEvent is published when stock is added to an entry
type StockAddedEvent struct {
	shared.BaseDomainEvent
	EntryID       uuid.UUID `json:"entry_id"`
	ProductID     uuid.UUID `json:"product_id"`
	QuantityAdded int64     `json:"quantity_added"`
	NewQuantity   int64     `json:"new_quantity"`
}

// NewStockAddedEvent creates a new StockAddedEvent
func NewStockAddedEvent(entry *StockEntry, quantityAdded int64) *StockAddedEvent {
	return &StockAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdded, AggregateTypeStockEntry, entry.ID),
		EntryID:         entry.ID,
		ProductID:       entry.ProductID,
		QuantityAdded:   quantityAdded,
		NewQuantity:     entry.Quantity,
	}
}

// StockDecrementedEvent is published when stock is removed from an entry
type StockDecrementedEvent struct {
	shared.BaseDomainEvent
	EntryID          uuid.UUID `json:"entry_id"`
	ProductID        uuid.UUID `json:"product_id"`
	QuantityRemoved  int64     `json:"quantity_removed"`
	RemainingQuantity int64    `json:"remaining_quantity"`
}

// NewStockDecrementedEvent creates a new StockDecrementedEvent
func NewStockDecrementedEvent(entry *StockEntry, quantityRemoved int64) *StockDecrementedEvent {
	return &StockDecrementedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeStockDecremented, AggregateTypeStockEntry, entry.ID),
		EntryID:           entry.ID,
		ProductID:         entry.ProductID,
		QuantityRemoved:   quantityRemoved,
		RemainingQuantity: entry.Quantity,
	}
}
