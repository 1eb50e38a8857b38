package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStockEntryRepository is a mock implementation of StockEntryRepository
type MockStockEntryRepository struct {
	mock.Mock
}

func (m *MockStockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockEntry, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindAllByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.StockEntry), args.Error(1)
}

func (m *MockStockEntryRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStockEntryRepository) Save(ctx context.Context, entry *inventory.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockEntryRepository) SaveWithLock(ctx context.Context, entry *inventory.StockEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStockEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestProduct(t *testing.T, sku string, cost, sale int64) *catalog.Product {
	product, err := catalog.NewProduct(
		sku, "Notebook "+sku, "",
		valueobject.NewMoneyBRL(decimal.NewFromInt(cost)),
		valueobject.NewMoneyBRL(decimal.NewFromInt(sale)),
	)
	require.NoError(t, err)
	return product
}

func newTestEntry(t *testing.T, productID uuid.UUID, qty int64) *inventory.StockEntry {
	entry, err := inventory.NewStockEntry(productID, qty)
	require.NoError(t, err)
	return entry
}

func TestInventoryServiceAddStock(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a new entry for a product without stock", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		product := newTestProduct(t, "NOTE-001", 800, 1200)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		stockRepo.On("FindByProduct", ctx, product.ID).Return(nil, shared.ErrNotFound)
		stockRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockEntry")).Return(nil)

		resp, err := service.AddStock(ctx, AddStockRequest{ProductID: product.ID, Quantity: 50})
		require.NoError(t, err)
		assert.Equal(t, int64(50), resp.Quantity)
		assert.Equal(t, product.ID, resp.ProductID)
		stockRepo.AssertExpectations(t)
	})

	t.Run("merges quantity into an existing entry", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		product := newTestProduct(t, "NOTE-001", 800, 1200)
		entry := newTestEntry(t, product.ID, 10)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		stockRepo.On("FindByProduct", ctx, product.ID).Return(entry, nil)
		stockRepo.On("Save", ctx, entry).Return(nil)

		resp, err := service.AddStock(ctx, AddStockRequest{ProductID: product.ID, Quantity: 15})
		require.NoError(t, err)
		assert.Equal(t, int64(25), resp.Quantity)
		assert.Equal(t, entry.ID, resp.ID)
	})

	t.Run("rejects stock for an unknown product", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		productID := uuid.New()
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.AddStock(ctx, AddStockRequest{ProductID: productID, Quantity: 5})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		stockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestInventoryServiceAddBulkStock(t *testing.T) {
	ctx := context.Background()
	stockRepo := new(MockStockEntryRepository)
	productRepo := new(MockProductRepository)
	service := NewInventoryService(stockRepo, productRepo)

	good := newTestProduct(t, "NOTE-001", 800, 1200)
	missing := uuid.New()

	productRepo.On("FindByID", ctx, good.ID).Return(good, nil)
	productRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)
	stockRepo.On("FindByProduct", ctx, good.ID).Return(nil, shared.ErrNotFound)
	stockRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockEntry")).Return(nil)

	resp, err := service.AddBulkStock(ctx, AddBulkStockRequest{Items: []AddStockRequest{
		{ProductID: good.ID, Quantity: 50},
		{ProductID: missing, Quantity: 5},
	}})

	require.NoError(t, err)
	require.Len(t, resp.Succeeded, 1)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, int64(50), resp.Succeeded[0].Quantity)
	assert.Equal(t, 1, resp.Failed[0].Index)
	assert.Equal(t, missing, resp.Failed[0].ProductID)
	assert.Equal(t, "NOT_FOUND", resp.Failed[0].Code)
}

func TestInventoryServiceAddBulkStockMergesRepeatedProduct(t *testing.T) {
	ctx := context.Background()
	stockRepo := new(MockStockEntryRepository)
	productRepo := new(MockProductRepository)
	service := NewInventoryService(stockRepo, productRepo)

	product := newTestProduct(t, "NOTE-001", 800, 1200)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

	// The first item creates the entry; the second must find that same
	// entry and merge into it rather than insert a second row.
	created := &inventory.StockEntry{}
	stockRepo.On("FindByProduct", ctx, product.ID).Return(nil, shared.ErrNotFound).Once()
	stockRepo.On("FindByProduct", ctx, product.ID).Return(created, nil)
	stockRepo.On("Save", ctx, mock.AnythingOfType("*inventory.StockEntry")).
		Run(func(args mock.Arguments) {
			if created.ID == uuid.Nil {
				*created = *args.Get(1).(*inventory.StockEntry)
			}
		}).
		Return(nil)

	resp, err := service.AddBulkStock(ctx, AddBulkStockRequest{Items: []AddStockRequest{
		{ProductID: product.ID, Quantity: 30},
		{ProductID: product.ID, Quantity: 20},
	}})

	require.NoError(t, err)
	require.Len(t, resp.Succeeded, 2)
	assert.Empty(t, resp.Failed)
	assert.Equal(t, int64(30), resp.Succeeded[0].Quantity)
	assert.Equal(t, int64(50), resp.Succeeded[1].Quantity)
	assert.Equal(t, resp.Succeeded[0].ID, resp.Succeeded[1].ID)
	stockRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestInventoryServiceGetAvailableQuantity(t *testing.T) {
	ctx := context.Background()
	stockRepo := new(MockStockEntryRepository)
	productRepo := new(MockProductRepository)
	service := NewInventoryService(stockRepo, productRepo)

	productID := uuid.New()
	stockRepo.On("SumQuantityByProduct", ctx, productID).Return(int64(75), nil)

	quantity, err := service.GetAvailableQuantity(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(75), quantity)
}

func TestInventoryServiceGetConsolidatedStock(t *testing.T) {
	ctx := context.Background()

	t.Run("sums entries per product and derives projected values", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		product := newTestProduct(t, "NOTE-001", 800, 1200)
		first := newTestEntry(t, product.ID, 30)
		second := newTestEntry(t, product.ID, 20)

		stockRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]inventory.StockEntry{*first, *second}, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).
			Return([]catalog.Product{*product}, nil)

		items, err := service.GetConsolidatedStock(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, "NOTE-001", item.SKU)
		assert.Equal(t, int64(50), item.Quantity)
		assert.Equal(t, "40000.00", item.TotalCostValue.StringFixed(2))
		assert.Equal(t, "60000.00", item.TotalSaleValue.StringFixed(2))
		assert.Equal(t, "20000.00", item.ProjectedProfit.StringFixed(2))
		assert.Equal(t, "33.33", item.ProfitMarginPercentage.StringFixed(2))
		assert.Equal(t, "800.00", item.CostPrice.StringFixed(2))
		assert.Equal(t, "1200.00", item.SalePrice.StringFixed(2))
		assert.Equal(t, product.Description, item.Description)
	})

	t.Run("margin uses unit prices even when the product is sold out", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		product := newTestProduct(t, "NOTE-002", 10, 15)
		entry := newTestEntry(t, product.ID, 6)
		require.NoError(t, entry.Decrement(6))

		stockRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]inventory.StockEntry{*entry}, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).
			Return([]catalog.Product{*product}, nil)

		items, err := service.GetConsolidatedStock(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, int64(0), item.Quantity)
		assert.Equal(t, "0.00", item.TotalSaleValue.StringFixed(2))
		assert.Equal(t, "33.33", item.ProfitMarginPercentage.StringFixed(2))
	})

	t.Run("margin is zero when sale value is zero", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		product := newTestProduct(t, "FREE-001", 0, 0)
		entry := newTestEntry(t, product.ID, 10)

		stockRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]inventory.StockEntry{*entry}, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).
			Return([]catalog.Product{*product}, nil)

		items, err := service.GetConsolidatedStock(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, items[0].ProfitMarginPercentage.IsZero())
	})

	t.Run("returns empty list when no stock exists", func(t *testing.T) {
		stockRepo := new(MockStockEntryRepository)
		productRepo := new(MockProductRepository)
		service := NewInventoryService(stockRepo, productRepo)

		stockRepo.On("FindAll", ctx, mock.AnythingOfType("shared.Filter")).
			Return([]inventory.StockEntry{}, nil)

		items, err := service.GetConsolidatedStock(ctx)
		require.NoError(t, err)
		assert.Empty(t, items)
		productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}
