package event

import (
	"context"
	"sync/atomic"

	"github.com/stockflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// IdempotencyMetrics counts delivery outcomes for a wrapped handler.
type IdempotencyMetrics struct {
	EventsProcessed atomic.Int64
	EventsDuplicate atomic.Int64
	EventsFailed    atomic.Int64
}

// IdempotencyStats is a point-in-time snapshot of IdempotencyMetrics.
type IdempotencyStats struct {
	EventsProcessed int64 `json:"events_processed"`
	EventsDuplicate int64 `json:"events_duplicate"`
	EventsFailed    int64 `json:"events_failed"`
}

// Stats snapshots the counters.
func (m *IdempotencyMetrics) Stats() IdempotencyStats {
	return IdempotencyStats{
		EventsProcessed: m.EventsProcessed.Load(),
		EventsDuplicate: m.EventsDuplicate.Load(),
		EventsFailed:    m.EventsFailed.Load(),
	}
}

// KeyFunc derives the idempotency key for an event.
// The default keys by event ID; handlers that must deduplicate per
// aggregate (e.g. one decrement per sale, however often the completion
// event is delivered) provide their own.
type KeyFunc func(event shared.DomainEvent) string

// DefaultKeyFunc keys by the unique event ID.
func DefaultKeyFunc(event shared.DomainEvent) string {
	return event.EventID().String()
}

// IdempotentHandler wraps an EventHandler so that redelivered events
// are acknowledged without running the handler again.
type IdempotentHandler struct {
	handler shared.EventHandler
	store   shared.IdempotencyStore
	config  shared.IdempotencyConfig
	keyFunc KeyFunc
	logger  *zap.Logger
	metrics *IdempotencyMetrics
}

var _ shared.EventHandler = (*IdempotentHandler)(nil)

// IdempotentHandlerOption customises an IdempotentHandler.
type IdempotentHandlerOption func(*IdempotentHandler)

// WithIdempotencyConfig overrides the default TTL and enabled flag.
func WithIdempotencyConfig(config shared.IdempotencyConfig) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.config = config }
}

// WithIdempotencyMetrics shares a metrics collector with the handler.
func WithIdempotencyMetrics(metrics *IdempotencyMetrics) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.metrics = metrics }
}

// WithIdempotencyKeyFunc overrides the key derivation.
func WithIdempotencyKeyFunc(fn KeyFunc) IdempotentHandlerOption {
	return func(h *IdempotentHandler) { h.keyFunc = fn }
}

// NewIdempotentHandler wraps handler with deduplication backed by store.
func NewIdempotentHandler(
	handler shared.EventHandler,
	store shared.IdempotencyStore,
	logger *zap.Logger,
	opts ...IdempotentHandlerOption,
) *IdempotentHandler {
	h := &IdempotentHandler{
		handler: handler,
		store:   store,
		config:  shared.DefaultIdempotencyConfig(),
		keyFunc: DefaultKeyFunc,
		logger:  logger,
		metrics: &IdempotencyMetrics{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes delegates to the wrapped handler's subscriptions.
func (h *IdempotentHandler) EventTypes() []string {
	return h.handler.EventTypes()
}

// Handle claims the event's idempotency key before delegating. A key
// that is already held means the event was delivered before, and the
// delivery succeeds without touching the wrapped handler. The key is
// kept on handler failure so retries wait out the TTL cooldown.
func (h *IdempotentHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.config.Enabled {
		return h.handler.Handle(ctx, event)
	}

	key := h.keyFunc(event)
	fields := []zap.Field{
		zap.String("idempotency_key", key),
		zap.String("event_type", event.EventType()),
	}

	claimed, err := h.store.MarkProcessed(ctx, key, h.config.TTL)
	switch {
	case err != nil:
		// A broken store must not drop events; risk a duplicate run instead.
		h.logger.Warn("idempotency check failed, processing anyway", append(fields, zap.Error(err))...)
	case !claimed:
		h.metrics.EventsDuplicate.Add(1)
		h.logger.Debug("duplicate event skipped", fields...)
		return nil
	}

	if err := h.handler.Handle(ctx, event); err != nil {
		h.metrics.EventsFailed.Add(1)
		h.logger.Error("event handler failed", append(fields, zap.Error(err))...)
		return err
	}

	h.metrics.EventsProcessed.Add(1)
	h.logger.Debug("event processed", fields...)
	return nil
}

// GetMetrics exposes the handler's counters.
func (h *IdempotentHandler) GetMetrics() *IdempotencyMetrics {
	return h.metrics
}

// GetWrappedHandler returns the handler being deduplicated.
func (h *IdempotentHandler) GetWrappedHandler() shared.EventHandler {
	return h.handler
}
