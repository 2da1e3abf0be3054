package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageforge/pageforge-backend/internal/projects/domain"
)

const listKey = "pageforge:projects:list"

// ListCache keeps the full project list in Redis under a single key.
// It is a read-through cache: misses and Redis faults are reported as
// (nil, false) or error and the caller falls back to the store.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a cache with the given TTL for the list entry.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	return &ListCache{client: client, ttl: ttl}
}

// Get returns the cached list if present.
func (c *ListCache) Get(ctx context.Context) ([]domain.Project, bool, error) {
	data, err := c.client.Get(ctx, listKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var projects []domain.Project
	if err := json.Unmarshal([]byte(data), &projects); err != nil {
		// stale or corrupt entry, treat as a miss
		return nil, false, nil
	}
	return projects, true, nil
}

// Set stores the list with the configured TTL.
func (c *ListCache) Set(ctx context.Context, projects []domain.Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey, data, c.ttl).Err()
}

// Invalidate drops the cached list. Called after every mutation.
func (c *ListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, listKey).Err()
}
