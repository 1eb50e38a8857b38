package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/shared/valueobject"
)

// SaleStatus represents the status of a sale transaction
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The lifecycle is one-way: pending orders complete and completed is terminal.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return target == SaleStatusCompleted
	case SaleStatusCompleted:
		return false
	}
	return false
}

// SaleLineItem represents one product position within a sale.
// Unit prices are snapshots of the catalog prices at sale time and
// never change afterwards, even when the product is repriced.
type SaleLineItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int64           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SaleLineItem) TableName() string {
	return "sale_line_items"
}

// NewSaleLineItem creates a new sale line item with price snapshots
func NewSaleLineItem(saleID, productID uuid.UUID, quantity int64, unitPrice, unitCost valueobject.Money) (*SaleLineItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.IsNegative() || unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit prices cannot be negative")
	}

	now := time.Now()
	return &SaleLineItem{
		ID:        uuid.New(),
		SaleID:    saleID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice.Amount(),
		UnitCost:  unitCost.Amount(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Amount returns quantity * unit price for this line
func (i *SaleLineItem) Amount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// Cost returns quantity * unit cost for this line
func (i *SaleLineItem) Cost() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(i.Quantity))
}

// Sale represents a sale transaction aggregate root.
// Totals are derived from the line items and are never set directly.
type Sale struct {
	shared.BaseAggregateRoot
	Items       []SaleLineItem  `gorm:"foreignKey:SaleID;references:ID"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalProfit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status      SaleStatus      `gorm:"type:varchar(20);not null;default:'pending'"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new pending sale with zero totals
func NewSale() *Sale {
	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Items:             make([]SaleLineItem, 0),
		TotalAmount:       decimal.Zero,
		TotalCost:         decimal.Zero,
		TotalProfit:       decimal.Zero,
		Status:            SaleStatusPending,
	}
}

// AddItem adds a line item snapshotting the given prices.
// Only allowed while the sale is pending.
func (s *Sale) AddItem(productID uuid.UUID, quantity int64, unitPrice, unitCost valueobject.Money) (*SaleLineItem, error) {
	if s.Status != SaleStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a completed sale")
	}

	item, err := NewSaleLineItem(s.ID, productID, quantity, unitPrice, unitCost)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotals()
	s.Touch()

	return item, nil
}

// Complete transitions the sale to completed, fixing the totals.
// A sale without items cannot complete.
func (s *Sale) Complete() error {
	if !s.Status.CanTransitionTo(SaleStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", "Sale cannot transition to completed from "+s.Status.String())
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Cannot complete a sale without items")
	}

	s.recalculateTotals()
	now := time.Now()
	s.Status = SaleStatusCompleted
	s.CompletedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCompletedEvent(s))

	return nil
}

// IsCompleted returns true when the sale reached its terminal state
func (s *Sale) IsCompleted() bool {
	return s.Status == SaleStatusCompleted
}

// GetTotalAmountMoney returns the total amount as Money
func (s *Sale) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(s.TotalAmount)
}

// GetTotalProfitMoney returns the total profit as Money
func (s *Sale) GetTotalProfitMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(s.TotalProfit)
}

func (s *Sale) recalculateTotals() {
	total := decimal.Zero
	cost := decimal.Zero
	for idx := range s.Items {
		total = total.Add(s.Items[idx].Amount())
		cost = cost.Add(s.Items[idx].Cost())
	}
	s.TotalAmount = total
	s.TotalCost = cost
	s.TotalProfit = total.Sub(cost)
}
