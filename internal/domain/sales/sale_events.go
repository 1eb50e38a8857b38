package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleCompleted = "SaleCompleted"
)

// SaleItemInfo represents line item information for events
type SaleItemInfo struct {
	ItemID    uuid.UUID       `json:"item_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Amount    decimal.Decimal `json:"amount"`
}

// SaleCompletedEvent is raised when a sale transaction completes.
// This event triggers the stock decrement in the inventory context.
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	Items       []SaleItemInfo  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalCost   decimal.Decimal `json:"total_cost"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	items := make([]SaleItemInfo, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemInfo{
			ItemID:    item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			UnitCost:  item.UnitCost,
			Amount:    item.Amount(),
		}
	}

	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		Items:           items,
		TotalAmount:     sale.TotalAmount,
		TotalCost:       sale.TotalCost,
		TotalProfit:     sale.TotalProfit,
	}
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return EventTypeSaleCompleted
}
