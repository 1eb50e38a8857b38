package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeProduct = "Product"

// Event type constants
const (
	EventTypeProductCreated      = "ProductCreated"
	EventTypeProductPriceChanged = "ProductPriceChanged"
)

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	CostPrice decimal.Decimal `json:"cost_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		Name:            product.Name,
		CostPrice:       product.CostPrice,
		SalePrice:       product.SalePrice,
	}
}

// ProductPriceChangedEvent is published when a product's prices change
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	SKU          string          `json:"sku"`
	OldCostPrice decimal.Decimal `json:"old_cost_price"`
	NewCostPrice decimal.Decimal `json:"new_cost_price"`
	OldSalePrice decimal.Decimal `json:"old_sale_price"`
	NewSalePrice decimal.Decimal `json:"new_sale_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(product *Product, oldCostPrice, oldSalePrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		SKU:             product.SKU,
		OldCostPrice:    oldCostPrice,
		NewCostPrice:    product.CostPrice,
		OldSalePrice:    oldSalePrice,
		NewSalePrice:    product.SalePrice,
	}
}
