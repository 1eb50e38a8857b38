package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	salesapp "github.com/stockflow/backend/internal/application/sales"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stockflow/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSaleRepository implements sales.SaleRepository for testing
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*sales.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]sales.Sale), args.Error(1)
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveWithItems(ctx context.Context, sale *sales.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository implements catalog.ProductRepository for testing
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

// MockStockEntryRepository implements inventory.StockEntryRepository for testing
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

type salesTestEnv struct {
	saleRepo    *MockSaleRepository
	productRepo *MockProductRepository
	stockRepo   *MockStockEntryRepository
	engine      *gin.Engine
}

func newSalesTestEnv() *salesTestEnv {
	gin.SetMode(gin.TestMode)

	env := &salesTestEnv{
		saleRepo:    new(MockSaleRepository),
		productRepo: new(MockProductRepository),
		stockRepo:   new(MockStockEntryRepository),
	}

	service := salesapp.NewSalesService(env.saleRepo, env.productRepo, env.stockRepo, zap.NewNop())
	h := NewSalesHandler(service)

	env.engine = gin.New()
	group := env.engine.Group("/api/v1/sales")
	group.POST("", h.Create)
	group.GET("/:id", h.GetByID)
	group.GET("", h.List)

	return env
}

func catalogProduct(t *testing.T, sku string, cost, sale int64) *catalog.Product {
	product, err := catalog.NewProduct(
		sku, "Notebook", "",
		valueobject.NewMoneyBRL(decimal.NewFromInt(cost)),
		valueobject.NewMoneyBRL(decimal.NewFromInt(sale)),
	)
	require.NoError(t, err)
	return product
}

func TestSalesHandlerCreate(t *testing.T) {
	t.Run("returns 201 with the completed sale", func(t *testing.T) {
		env := newSalesTestEnv()
		product := catalogProduct(t, "NOTE-001", 800, 1200)

		env.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		env.stockRepo.On("SumQuantityByProduct", mock.Anything, product.ID).Return(int64(50), nil)
		env.saleRepo.On("SaveWithItems", mock.Anything, mock.AnythingOfType("*sales.Sale")).Return(nil)

		body := fmt.Sprintf(`{"items":[{"product_id":"%s","quantity":1}]}`, product.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				Status      string          `json:"status"`
				TotalProfit decimal.Decimal `json:"total_profit"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "completed", resp.Data.Status)
		assert.True(t, decimal.NewFromInt(400).Equal(resp.Data.TotalProfit))
	})

	t.Run("returns 422 with INSUFFICIENT_STOCK when stock is short", func(t *testing.T) {
		env := newSalesTestEnv()
		product := catalogProduct(t, "NOTE-001", 800, 1200)

		env.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		env.stockRepo.On("SumQuantityByProduct", mock.Anything, product.ID).Return(int64(50), nil)

		body := fmt.Sprintf(`{"items":[{"product_id":"%s","quantity":60}]}`, product.ID)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
	})

	t.Run("returns 400 on malformed body", func(t *testing.T) {
		env := newSalesTestEnv()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", bytes.NewBufferString(`{"items":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSalesHandlerGetByID(t *testing.T) {
	t.Run("returns 404 for an unknown sale", func(t *testing.T) {
		env := newSalesTestEnv()
		id := uuid.New()
		env.saleRepo.On("FindByIDWithItems", mock.Anything, id).Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+id.String(), nil)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 400 for a non-UUID id", func(t *testing.T) {
		env := newSalesTestEnv()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/not-a-uuid", nil)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
