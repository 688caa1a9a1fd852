package repository

import (
	"context"
	"time"
)

// DedupeStore remembers recently seen keys for a bounded window. Used to
// drop duplicate webhook deliveries cheaply; the transaction status gate
// remains the correctness guarantee.
type DedupeStore interface {
	// Seen records the key and reports whether it was already present.
	Seen(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
