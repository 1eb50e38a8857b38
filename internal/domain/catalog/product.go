package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable item in the catalog
// It is the aggregate root for catalog operations
type Product struct {
	shared.BaseAggregateRoot
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with price validation
func NewProduct(sku, name, description string, costPrice, salePrice valueobject.Money) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               strings.ToUpper(strings.TrimSpace(sku)),
		Name:              name,
		Description:       description,
		CostPrice:         decimal.Zero,
		SalePrice:         decimal.Zero,
	}

	if err := product.SetPrices(costPrice, salePrice); err != nil {
		return nil, err
	}

	product.ClearDomainEvents()
	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// SetPrices sets both cost and sale prices
func (p *Product) SetPrices(costPrice, salePrice valueobject.Money) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	oldCostPrice := p.CostPrice
	oldSalePrice := p.SalePrice

	p.CostPrice = costPrice.Amount()
	p.SalePrice = salePrice.Amount()
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldCostPrice, oldSalePrice))

	return nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.Touch()
	p.IncrementVersion()

	return nil
}

// GetCostPriceMoney returns the cost price as a Money value object
func (p *Product) GetCostPriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.CostPrice)
}

// GetSalePriceMoney returns the sale price as a Money value object
func (p *Product) GetSalePriceMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(p.SalePrice)
}

// UnitProfit returns the profit made on a single unit
func (p *Product) UnitProfit() decimal.Decimal {
	return p.SalePrice.Sub(p.CostPrice)
}

// ProfitMarginPercentage returns the margin relative to the sale price,
// in percent. A zero sale price yields a zero margin.
func (p *Product) ProfitMarginPercentage() decimal.Decimal {
	if !p.SalePrice.IsPositive() {
		return decimal.Zero
	}
	return p.SalePrice.Sub(p.CostPrice).
		Div(p.SalePrice).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func validateSKU(sku string) error {
	trimmed := strings.TrimSpace(sku)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(trimmed) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
