package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/sales"
)

// SaleItemRequest represents one requested line of a sale
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// CreateSaleRequest represents a request to create and complete a sale
type CreateSaleRequest struct {
	Items []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleLineItemResponse represents a sale line item in API responses
type SaleLineItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Amount    decimal.Decimal `json:"amount"`
	Cost      decimal.Decimal `json:"cost"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID          uuid.UUID              `json:"id"`
	Status      string                 `json:"status"`
	TotalAmount decimal.Decimal        `json:"total_amount"`
	TotalCost   decimal.Decimal        `json:"total_cost"`
	TotalProfit decimal.Decimal        `json:"total_profit"`
	Items       []SaleLineItemResponse `json:"items"`
	CompletedAt *time.Time             `json:"completed_at"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	Version     int                    `json:"version"`
}

// SaleListFilter represents filter options for sale list
type SaleListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSaleResponse converts a domain Sale to SaleResponse. Prices are
// stored to 4 decimal places; clients see 2.
func ToSaleResponse(s *sales.Sale) SaleResponse {
	items := make([]SaleLineItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleLineItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.Round(2),
			UnitCost:  item.UnitCost.Round(2),
			Amount:    item.Amount().Round(2),
			Cost:      item.Cost().Round(2),
		}
	}

	return SaleResponse{
		ID:          s.ID,
		Status:      s.Status.String(),
		TotalAmount: s.TotalAmount.Round(2),
		TotalCost:   s.TotalCost.Round(2),
		TotalProfit: s.TotalProfit.Round(2),
		Items:       items,
		CompletedAt: s.CompletedAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
		Version:     s.Version,
	}
}
