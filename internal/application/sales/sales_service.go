package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SalesService handles sale creation and lookup
type SalesService struct {
	saleRepo       sales.SaleRepository
	productRepo    catalog.ProductRepository
	stockRepo      inventory.StockEntryRepository
	eventPublisher shared.EventPublisher
	locks          *productLocks
	logger         *zap.Logger
}

// NewSalesService creates a new SalesService
func NewSalesService(
	saleRepo sales.SaleRepository,
	productRepo catalog.ProductRepository,
	stockRepo inventory.StockEntryRepository,
	logger *zap.Logger,
) *SalesService {
	return &SalesService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
		locks:       newProductLocks(),
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create validates availability for every requested item, then creates
// and completes the sale in one operation. The touched products stay
// locked from validation until the sale is persisted, so two concurrent
// sales cannot both pass validation against the same stock.
func (s *SalesService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Sale must contain at least one item")
	}

	productIDs := make([]uuid.UUID, 0, len(req.Items))
	requested := make(map[uuid.UUID]int64, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		if _, seen := requested[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
	}

	unlock := s.locks.LockAll(productIDs)
	defer unlock()

	products, err := s.validateAvailability(ctx, productIDs, requested)
	if err != nil {
		return nil, err
	}

	sale := sales.NewSale()
	for _, item := range req.Items {
		product := products[item.ProductID]
		if _, err := sale.AddItem(item.ProductID, item.Quantity, product.GetSalePriceMoney(), product.GetCostPriceMoney()); err != nil {
			return nil, err
		}
	}

	if err := sale.Complete(); err != nil {
		return nil, err
	}

	if err := s.saleRepo.SaveWithItems(ctx, sale); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		events := sale.GetDomainEvents()
		for _, event := range events {
			if err := s.eventPublisher.Publish(ctx, event); err != nil {
				s.logger.Error("failed to publish sale event",
					zap.String("sale_id", sale.ID.String()),
					zap.String("event_type", event.EventType()),
					zap.Error(err),
				)
			}
		}
		sale.ClearDomainEvents()
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// validateAvailability checks the total requested quantity per product
// against the summed stock on hand and loads the products whose prices
// the sale will snapshot. Products are checked in request order, so the
// first violating item of the request is the one reported.
func (s *SalesService) validateAvailability(ctx context.Context, productIDs []uuid.UUID, requested map[uuid.UUID]int64) (map[uuid.UUID]*catalog.Product, error) {
	products := make(map[uuid.UUID]*catalog.Product, len(requested))

	for _, productID := range productIDs {
		quantity := requested[productID]
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("NOT_FOUND",
					fmt.Sprintf("Product %s not found", productID))
			}
			return nil, err
		}

		available, err := s.stockRepo.SumQuantityByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		if available == 0 {
			return nil, shared.NewDomainError("OUT_OF_STOCK",
				fmt.Sprintf("Product %s has no stock on hand", product.SKU))
		}
		if available < quantity {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock for product %s: requested %d, available %d",
					product.SKU, quantity, available))
		}

		products[productID] = product
	}

	return products, nil
}

// GetByID retrieves a sale with its line items
func (s *SalesService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByIDWithItems(ctx, saleID)
	if err != nil {
		return nil, err
	}

	response := ToSaleResponse(sale)
	return &response, nil
}

// List retrieves sales with pagination, newest first
func (s *SalesService) List(ctx context.Context, filter SaleListFilter) (shared.Paginated[SaleResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}

	found, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[SaleResponse]{}, err
	}

	responses := make([]SaleResponse, len(found))
	for i := range found {
		responses[i] = ToSaleResponse(&found[i])
	}

	return shared.NewPaginated(responses, total, filter.Page, filter.PageSize), nil
}
