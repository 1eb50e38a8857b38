package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// StockEntryRepository defines the interface for stock entry persistence
type StockEntryRepository interface {
	// FindByID finds a stock entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockEntry, error)

	// FindByProduct finds the oldest stock entry for a product,
	// or returns shared.ErrNotFound when the product has no entries
	FindByProduct(ctx context.Context, productID uuid.UUID) (*StockEntry, error)

	// FindAllByProduct finds every stock entry for a product
	FindAllByProduct(ctx context.Context, productID uuid.UUID) ([]StockEntry, error)

	// FindAll finds all stock entries matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockEntry, error)

	// SumQuantityByProduct returns the total quantity on hand for a product
	// across all of its entries
	SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// Save creates or updates a stock entry
	Save(ctx context.Context, entry *StockEntry) error

	// SaveWithLock updates a stock entry with optimistic lock checking,
	// returning shared.ErrConcurrencyConflict when the stored version moved
	SaveWithLock(ctx context.Context, entry *StockEntry) error

	// Count counts stock entries matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
