package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hangarapp/hangar-booking/internal/domain"
)

// TenantCache caches slug → tenant lookups for the public micro-site,
// which is by far the hottest read path. Occupancy is deliberately never
// cached: slot availability must be read fresh on every booking attempt.
type TenantCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTenantCache creates a tenant cache with the given entry TTL.
func NewTenantCache(client *redis.Client, ttl time.Duration) *TenantCache {
	return &TenantCache{client: client, ttl: ttl}
}

func slugKey(slug string) string {
	return "tenant:slug:" + slug
}

// GetBySlug returns the cached tenant, or nil on a miss. Cache errors are
// returned so the caller can log them, but a miss and an error both mean
// "go to the database".
func (c *TenantCache) GetBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	data, err := c.client.Get(ctx, slugKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tenant cache get: %w", err)
	}

	var t domain.Tenant
	if err := json.Unmarshal(data, &t); err != nil {
		// A corrupt entry behaves like a miss.
		return nil, nil
	}
	return &t, nil
}

// Set stores the tenant under its slug.
func (c *TenantCache) Set(ctx context.Context, t *domain.Tenant) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("tenant cache marshal: %w", err)
	}
	if err := c.client.Set(ctx, slugKey(t.Slug), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("tenant cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached entry, called after configuration updates.
func (c *TenantCache) Invalidate(ctx context.Context, slug string) error {
	if err := c.client.Del(ctx, slugKey(slug)).Err(); err != nil {
		return fmt.Errorf("tenant cache invalidate: %w", err)
	}
	return nil
}
