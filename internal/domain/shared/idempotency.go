package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers deduplication keys so an event delivered
// more than once is only acted on once within the TTL window.
type IdempotencyStore interface {
	// MarkProcessed records the key with the given TTL. It reports true
	// when the key was new and false when it was already present, as one
	// atomic operation.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether the key is currently recorded
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases the store's resources
	Close() error
}

// IdempotencyConfig controls deduplication behavior
type IdempotencyConfig struct {
	// TTL is how long a key stays recorded. After it expires the same
	// key is processed again, so the TTL doubles as the retry cooldown
	// for deliveries whose handler failed.
	TTL time.Duration

	Enabled bool
}

// DefaultIdempotencyConfig enables deduplication with a 1 hour window
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     time.Hour,
		Enabled: true,
	}
}
