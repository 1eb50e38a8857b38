package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stockflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockEntry(t *testing.T) {
	productID := uuid.New()

	t.Run("creates entry with valid inputs", func(t *testing.T) {
		entry, err := NewStockEntry(productID, 50)
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, productID, entry.ProductID)
		assert.Equal(t, int64(50), entry.Quantity)
		assert.False(t, entry.LastUpdated.IsZero())
	})

	t.Run("publishes StockAdded event", func(t *testing.T) {
		entry, err := NewStockEntry(productID, 50)
		require.NoError(t, err)

		events := entry.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeStockAdded, events[0].EventType())
	})

	t.Run("fails with nil product", func(t *testing.T) {
		_, err := NewStockEntry(uuid.Nil, 50)
		require.Error(t, err)
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		_, err := NewStockEntry(productID, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 1")
	})

	t.Run("fails with negative quantity", func(t *testing.T) {
		_, err := NewStockEntry(productID, -3)
		require.Error(t, err)
	})
}

func TestStockEntryAddQuantity(t *testing.T) {
	t.Run("merges quantity into existing entry", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.New(), 50)
		require.NoError(t, err)
		before := entry.LastUpdated
		version := entry.GetVersion()

		err = entry.AddQuantity(15)
		require.NoError(t, err)
		assert.Equal(t, int64(65), entry.Quantity)
		assert.False(t, entry.LastUpdated.Before(before))
		assert.Equal(t, version+1, entry.GetVersion())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.New(), 50)
		require.NoError(t, err)

		err = entry.AddQuantity(0)
		require.Error(t, err)
		assert.Equal(t, int64(50), entry.Quantity)
	})
}

func TestStockEntryDecrement(t *testing.T) {
	t.Run("removes quantity", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.New(), 50)
		require.NoError(t, err)

		err = entry.Decrement(1)
		require.NoError(t, err)
		assert.Equal(t, int64(49), entry.Quantity)
	})

	t.Run("can drain the entry to zero", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.New(), 50)
		require.NoError(t, err)

		err = entry.Decrement(50)
		require.NoError(t, err)
		assert.Equal(t, int64(0), entry.Quantity)
		assert.True(t, entry.IsDepleted())
	})

	t.Run("never goes below zero", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.New(), 50)
		require.NoError(t, err)

		err = entry.Decrement(60)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrConsistencyViolation)
		assert.Equal(t, int64(50), entry.Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		entry, err := NewStockEntry(uuid.New(), 50)
		require.NoError(t, err)

		err = entry.Decrement(-1)
		require.Error(t, err)
	})
}
