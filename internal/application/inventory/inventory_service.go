package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// InventoryService handles stock-related business operations
type InventoryService struct {
	stockRepo   inventory.StockEntryRepository
	productRepo catalog.ProductRepository
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	stockRepo inventory.StockEntryRepository,
	productRepo catalog.ProductRepository,
) *InventoryService {
	return &InventoryService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

// AddStock adds quantity for a product. When the product already has a
// stock entry the quantity is merged into it, otherwise a new entry is
// created.
func (s *InventoryService) AddStock(ctx context.Context, req AddStockRequest) (*StockEntryResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Product not found")
		}
		return nil, err
	}

	entry, err := s.stockRepo.FindByProduct(ctx, req.ProductID)
	switch {
	case err == nil:
		if err := entry.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
	case errors.Is(err, shared.ErrNotFound):
		entry, err = inventory.NewStockEntry(req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.stockRepo.Save(ctx, entry); err != nil {
		return nil, err
	}

	response := ToStockEntryResponse(entry)
	return &response, nil
}

// AddBulkStock processes a batch of stock additions one by one. A failed
// item does not stop the batch; each failure is reported alongside the
// entries that did land.
func (s *InventoryService) AddBulkStock(ctx context.Context, req AddBulkStockRequest) (*BulkStockResponse, error) {
	result := &BulkStockResponse{
		Succeeded: make([]StockEntryResponse, 0, len(req.Items)),
		Failed:    make([]BulkStockFailure, 0),
	}

	for i, item := range req.Items {
		resp, err := s.AddStock(ctx, item)
		if err != nil {
			code := "INTERNAL"
			var domainErr *shared.DomainError
			if errors.As(err, &domainErr) {
				code = domainErr.Code
			}
			result.Failed = append(result.Failed, BulkStockFailure{
				Index:     i,
				ProductID: item.ProductID,
				Code:      code,
				Message:   err.Error(),
			})
			continue
		}
		result.Succeeded = append(result.Succeeded, *resp)
	}

	return result, nil
}

// GetAvailableQuantity returns the total quantity on hand for a product
func (s *InventoryService) GetAvailableQuantity(ctx context.Context, productID uuid.UUID) (int64, error) {
	return s.stockRepo.SumQuantityByProduct(ctx, productID)
}

// GetConsolidatedStock returns one row per product with summed quantities
// and projected values derived from the product's current prices.
func (s *InventoryService) GetConsolidatedStock(ctx context.Context) ([]ConsolidatedStockItem, error) {
	entries, err := s.stockRepo.FindAll(ctx, shared.Filter{OrderBy: "created_at", OrderDir: "asc"})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []ConsolidatedStockItem{}, nil
	}

	grouped := make(map[uuid.UUID][]inventory.StockEntry)
	productIDs := make([]uuid.UUID, 0)
	for _, entry := range entries {
		if _, seen := grouped[entry.ProductID]; !seen {
			productIDs = append(productIDs, entry.ProductID)
		}
		grouped[entry.ProductID] = append(grouped[entry.ProductID], entry)
	}

	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	items := make([]ConsolidatedStockItem, 0, len(grouped))
	for _, productID := range productIDs {
		product, ok := productByID[productID]
		if !ok {
			// Entry without a product row means the catalog and the
			// ledger disagree.
			return nil, shared.ErrConsistencyViolation
		}
		items = append(items, consolidate(product, grouped[productID]))
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductName < items[j].ProductName
	})

	return items, nil
}

func consolidate(product catalog.Product, entries []inventory.StockEntry) ConsolidatedStockItem {
	item := ConsolidatedStockItem{
		ProductID:   product.ID,
		SKU:         product.SKU,
		ProductName: product.Name,
		Description: product.Description,
		CostPrice:   product.CostPrice.Round(2),
		SalePrice:   product.SalePrice.Round(2),
		CreatedAt:   entries[0].CreatedAt,
		UpdatedAt:   entries[0].UpdatedAt,
		LastUpdated: entries[0].LastUpdated,
	}

	for _, entry := range entries {
		item.Quantity += entry.Quantity
		if entry.CreatedAt.Before(item.CreatedAt) {
			item.CreatedAt = entry.CreatedAt
		}
		if entry.UpdatedAt.After(item.UpdatedAt) {
			item.UpdatedAt = entry.UpdatedAt
		}
		if entry.LastUpdated.After(item.LastUpdated) {
			item.LastUpdated = entry.LastUpdated
		}
	}

	quantity := decimal.NewFromInt(item.Quantity)
	item.TotalCostValue = product.CostPrice.Mul(quantity).Round(2)
	item.TotalSaleValue = product.SalePrice.Mul(quantity).Round(2)
	item.ProjectedProfit = item.TotalSaleValue.Sub(item.TotalCostValue).Round(2)
	// Margin comes from the unit prices, not the summed values: a
	// depleted product still reports its catalog margin.
	item.ProfitMarginPercentage = product.ProfitMarginPercentage()

	return item
}
