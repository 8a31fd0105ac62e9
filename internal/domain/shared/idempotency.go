package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied submission keys so that a
// retried CreateSale request cannot post the same sale twice.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already known.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key has already been processed
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close releases the store's resources
	Close() error
}

// IdempotencyConfig holds configuration for submission deduplication
type IdempotencyConfig struct {
	// Enabled determines whether idempotency checking is performed at all
	Enabled bool

	// TTL is how long a processed key is remembered. After it expires the
	// same key is accepted again.
	TTL time.Duration
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Enabled: true,
		TTL:     24 * time.Hour,
	}
}
