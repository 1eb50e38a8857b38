package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupStockEntryTestDB creates an in-memory SQLite database for testing
func setupStockEntryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&inventory.StockEntry{})
	require.NoError(t, err)

	return db
}

func mustNewEntry(t *testing.T, productID uuid.UUID, qty int64) *inventory.StockEntry {
	entry, err := inventory.NewStockEntry(productID, qty)
	require.NoError(t, err)
	return entry
}

func TestGormStockEntryRepository_FindByProduct(t *testing.T) {
	db := setupStockEntryTestDB(t)
	repo := NewGormStockEntryRepository(db)
	ctx := context.Background()

	t.Run("returns not found when product has no entries", func(t *testing.T) {
		_, err := repo.FindByProduct(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds the entry for a product", func(t *testing.T) {
		productID := uuid.New()
		entry := mustNewEntry(t, productID, 50)
		require.NoError(t, repo.Save(ctx, entry))

		found, err := repo.FindByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, entry.ID, found.ID)
		assert.Equal(t, int64(50), found.Quantity)
	})
}

func TestGormStockEntryRepository_SumQuantityByProduct(t *testing.T) {
	db := setupStockEntryTestDB(t)
	repo := NewGormStockEntryRepository(db)
	ctx := context.Background()

	t.Run("sums across multiple entries of the same product", func(t *testing.T) {
		productID := uuid.New()
		require.NoError(t, repo.Save(ctx, mustNewEntry(t, productID, 30)))
		require.NoError(t, repo.Save(ctx, mustNewEntry(t, productID, 20)))
		require.NoError(t, repo.Save(ctx, mustNewEntry(t, uuid.New(), 99)))

		total, err := repo.SumQuantityByProduct(ctx, productID)
		require.NoError(t, err)
		assert.Equal(t, int64(50), total)
	})

	t.Run("returns zero for unknown product", func(t *testing.T) {
		total, err := repo.SumQuantityByProduct(ctx, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestGormStockEntryRepository_SaveMergesQuantity(t *testing.T) {
	db := setupStockEntryTestDB(t)
	repo := NewGormStockEntryRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	entry := mustNewEntry(t, productID, 10)
	require.NoError(t, repo.Save(ctx, entry))

	// Reload, merge and persist again - same row, larger quantity
	found, err := repo.FindByProduct(ctx, productID)
	require.NoError(t, err)
	require.NoError(t, found.AddQuantity(15))
	require.NoError(t, repo.Save(ctx, found))

	count, err := repo.Count(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	total, err := repo.SumQuantityByProduct(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
}

func TestGormStockEntryRepository_SaveWithLock(t *testing.T) {
	db := setupStockEntryTestDB(t)
	repo := NewGormStockEntryRepository(db)
	ctx := context.Background()

	t.Run("saves when version matches", func(t *testing.T) {
		entry := mustNewEntry(t, uuid.New(), 50)
		require.NoError(t, repo.Save(ctx, entry))

		require.NoError(t, entry.Decrement(1))
		require.NoError(t, repo.SaveWithLock(ctx, entry))

		found, err := repo.FindByID(ctx, entry.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(49), found.Quantity)
		assert.Equal(t, entry.Version, found.Version)
	})

	t.Run("fails when stored version moved", func(t *testing.T) {
		entry := mustNewEntry(t, uuid.New(), 50)
		require.NoError(t, repo.Save(ctx, entry))

		// Simulate a concurrent writer bumping the stored version
		require.NoError(t, db.Model(&inventory.StockEntry{}).
			Where("id = ?", entry.ID).
			Update("version", entry.Version+5).Error)

		require.NoError(t, entry.Decrement(1))
		err := repo.SaveWithLock(ctx, entry)
		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
