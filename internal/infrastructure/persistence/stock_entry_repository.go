package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStockEntryRepository implements StockEntryRepository using GORM
type GormStockEntryRepository struct {
	db *gorm.DB
}

// NewGormStockEntryRepository creates a new GormStockEntryRepository
func NewGormStockEntryRepository(db *gorm.DB) *GormStockEntryRepository {
	return &GormStockEntryRepository{db: db}
}

// FindByID finds a stock entry by its ID
func (r *GormStockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockEntry, error) {
	var entry inventory.StockEntry
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByProduct finds the oldest stock entry for a product
func (r *GormStockEntryRepository) FindByProduct(ctx context.Context, productID uuid.UUID) (*inventory.StockEntry, error) {
	var entry inventory.StockEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAllByProduct finds every stock entry for a product
func (r *GormStockEntryRepository) FindAllByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds all stock entries matching the filter
func (r *GormStockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockEntry, error) {
	var entries []inventory.StockEntry
	query := r.db.WithContext(ctx).Model(&inventory.StockEntry{})

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	query = query.Order(orderClause(filter, StockEntrySortFields, "created_at", "ASC"))

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// SumQuantityByProduct returns the total quantity on hand for a product
func (r *GormStockEntryRepository) SumQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Save creates or updates a stock entry
func (r *GormStockEntryRepository) Save(ctx context.Context, entry *inventory.StockEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// SaveWithLock saves with optimistic locking (checks version)
func (r *GormStockEntryRepository) SaveWithLock(ctx context.Context, entry *inventory.StockEntry) error {
	result := r.db.WithContext(ctx).
		Model(entry).
		Where("id = ? AND version = ?", entry.ID, entry.Version-1).
		Updates(map[string]interface{}{
			"quantity":     entry.Quantity,
			"last_updated": entry.LastUpdated,
			"version":      entry.Version,
			"updated_at":   entry.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts stock entries matching the filter
func (r *GormStockEntryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.StockEntry{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormStockEntryRepository implements StockEntryRepository
var _ inventory.StockEntryRepository = (*GormStockEntryRepository)(nil)
