package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by its ID, without line items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByIDWithItems finds a sale by its ID including line items
	FindByIDWithItems(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindAll finds all sales matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale without touching its items
	Save(ctx context.Context, sale *Sale) error

	// SaveWithItems persists the sale and its line items in one transaction
	SaveWithItems(ctx context.Context, sale *Sale) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
