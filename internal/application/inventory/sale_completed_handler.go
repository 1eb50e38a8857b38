package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// saveRetries bounds how often a decrement is retried after losing an
// optimistic-lock race against another writer.
const saveRetries = 3

// SaleCompletedHandler decrements stock when a sale completes. Wrapped in
// an idempotent handler keyed by sale ID it guarantees a sale is deducted
// from stock exactly once, however often the event is delivered.
type SaleCompletedHandler struct {
	stockRepo inventory.StockEntryRepository
	logger    *zap.Logger
}

// NewSaleCompletedHandler creates a new handler for sale completed events
func NewSaleCompletedHandler(
	stockRepo inventory.StockEntryRepository,
	logger *zap.Logger,
) *SaleCompletedHandler {
	return &SaleCompletedHandler{
		stockRepo: stockRepo,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleCompletedHandler) EventTypes() []string {
	return []string{sales.EventTypeSaleCompleted}
}

// Handle processes a SaleCompletedEvent
func (h *SaleCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completedEvent, ok := event.(*sales.SaleCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", sales.EventTypeSaleCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			sales.EventTypeSaleCompleted, event.EventType())
	}

	h.logger.Info("processing sale completed event",
		zap.String("sale_id", completedEvent.SaleID.String()),
		zap.Int("items_count", len(completedEvent.Items)),
	)

	var lastErr error
	successCount := 0
	for _, item := range completedEvent.Items {
		if err := h.decrementWithRetry(ctx, completedEvent, item); err != nil {
			h.logger.Error("failed to decrement stock for sold item",
				zap.String("sale_id", completedEvent.SaleID.String()),
				zap.String("product_id", item.ProductID.String()),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err),
			)
			lastErr = err
			// Continue with the remaining items even if one fails
			continue
		}
		successCount++
	}

	h.logger.Info("sale stock reconciliation completed",
		zap.String("sale_id", completedEvent.SaleID.String()),
		zap.Int("total_items", len(completedEvent.Items)),
		zap.Int("success_count", successCount),
		zap.Bool("has_errors", lastErr != nil),
	)

	if lastErr != nil {
		return fmt.Errorf("some items failed to process: %w", lastErr)
	}
	return nil
}

// decrementWithRetry reloads the entry and retries the save when a
// concurrent writer moved the version underneath us.
func (h *SaleCompletedHandler) decrementWithRetry(ctx context.Context, event *sales.SaleCompletedEvent, item sales.SaleItemInfo) error {
	var lastErr error
	for attempt := 0; attempt < saveRetries; attempt++ {
		entry, err := h.stockRepo.FindByProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				// The sale completed against stock that no longer has an
				// entry. Availability was checked before completion, so
				// this is stored data contradicting a committed sale.
				return fmt.Errorf("no stock entry for product %s sold in sale %s: %w",
					item.ProductID, event.SaleID, shared.ErrConsistencyViolation)
			}
			return err
		}

		if err := entry.Decrement(item.Quantity); err != nil {
			return err
		}

		err = h.stockRepo.SaveWithLock(ctx, entry)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}

// SaleIdempotencyKey derives the deduplication key for sale completed
// events from the sale ID, so redelivered events for the same sale are
// deduplicated even when they carry different event IDs.
func SaleIdempotencyKey(event shared.DomainEvent) string {
	if completed, ok := event.(*sales.SaleCompletedEvent); ok {
		return "sale_processed_" + completed.SaleID.String()
	}
	return event.EventID().String()
}

// Ensure SaleCompletedHandler implements shared.EventHandler
var _ shared.EventHandler = (*SaleCompletedHandler)(nil)
