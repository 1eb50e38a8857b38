package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/inventory"
)

// AddStockRequest represents a request to add stock for a product
type AddStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// AddBulkStockRequest represents a request to add stock for several products at once
type AddBulkStockRequest struct {
	Items []AddStockRequest `json:"items" binding:"required,min=1,dive"`
}

// StockEntryResponse represents a stock entry in API responses
type StockEntryResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int64     `json:"quantity"`
	LastUpdated time.Time `json:"last_updated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// BulkStockFailure describes one item of a bulk request that could not be processed
type BulkStockFailure struct {
	Index     int       `json:"index"`
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
}

// BulkStockResponse reports the outcome of a bulk stock request item by item
type BulkStockResponse struct {
	Succeeded []StockEntryResponse `json:"succeeded"`
	Failed    []BulkStockFailure   `json:"failed"`
}

// ConsolidatedStockItem is one product's aggregated stock position,
// carrying the product's catalog data alongside the summed quantities.
type ConsolidatedStockItem struct {
	ProductID              uuid.UUID       `json:"product_id"`
	SKU                    string          `json:"sku"`
	ProductName            string          `json:"product_name"`
	Description            string          `json:"description"`
	CostPrice              decimal.Decimal `json:"cost_price"`
	SalePrice              decimal.Decimal `json:"sale_price"`
	Quantity               int64           `json:"quantity"`
	TotalCostValue         decimal.Decimal `json:"total_cost_value"`
	TotalSaleValue         decimal.Decimal `json:"total_sale_value"`
	ProjectedProfit        decimal.Decimal `json:"projected_profit"`
	ProfitMarginPercentage decimal.Decimal `json:"profit_margin_percentage"`
	LastUpdated            time.Time       `json:"last_updated"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

// ToStockEntryResponse converts a domain StockEntry to StockEntryResponse
func ToStockEntryResponse(e *inventory.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		Quantity:    e.Quantity,
		LastUpdated: e.LastUpdated,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
		Version:     e.Version,
	}
}
