package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	availabilityKeyPrefix = "availability:"
	availabilityTTL       = 5 * time.Minute
)

// BookedRange is the cached wire shape of one occupied date range.
type BookedRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AvailabilityCache keeps each provider's booked ranges in Redis so the
// public calendar endpoint does not hit Postgres on every poll. Entries are
// invalidated whenever a booking for the provider is created or transitions.
type AvailabilityCache struct {
	redis *redis.Client
}

// New connects to Redis and returns the cache wrapper.
func New(addr string) (*AvailabilityCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &AvailabilityCache{redis: client}, nil
}

func key(providerID uint) string {
	return fmt.Sprintf("%s%d", availabilityKeyPrefix, providerID)
}

// Get returns the cached ranges and whether the entry was present.
func (c *AvailabilityCache) Get(ctx context.Context, providerID uint) ([]BookedRange, bool) {
	data, err := c.redis.Get(ctx, key(providerID)).Bytes()
	if err != nil {
		return nil, false
	}

	var ranges []BookedRange
	if err := json.Unmarshal(data, &ranges); err != nil {
		return nil, false
	}
	return ranges, true
}

// Set stores the ranges with a TTL.
func (c *AvailabilityCache) Set(ctx context.Context, providerID uint, ranges []BookedRange) error {
	data, err := json.Marshal(ranges)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, key(providerID), data, availabilityTTL).Err()
}

// Invalidate drops the provider's entry.
func (c *AvailabilityCache) Invalidate(ctx context.Context, providerID uint) error {
	return c.redis.Del(ctx, key(providerID)).Err()
}

// Close releases the Redis connection.
func (c *AvailabilityCache) Close() error {
	return c.redis.Close()
}
