package redis

import (
	"context"
	"time"

	"hotspot-ticketing/internal/domain/ports/repository"
)

var _ repository.DedupeStore = (*DedupeStore)(nil)

// DedupeStore implements webhook-event deduplication on SETNX with TTL.
type DedupeStore struct {
	client RedisClient
}

func NewDedupeStore(client RedisClient) *DedupeStore {
	return &DedupeStore{client: client}
}

func (d *DedupeStore) Seen(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	set, err := d.client.SetNX(ctx, key, 1, ttl)
	if err != nil {
		return false, err
	}
	return !set, nil
}
