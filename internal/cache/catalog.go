package cache

import (
	"context"
	"encoding/json"
	"time"

	"flavourfit/internal/foodoscope"
	"flavourfit/internal/logger"
)

const keyPrefix = "flavourfit:"

// Store is a byte-oriented key/value store with expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Catalog is the recipe lookup surface that CachedCatalog decorates.
type Catalog interface {
	RecipeOfTheDayID(ctx context.Context) (string, error)
	RecipeDetail(ctx context.Context, id string) (*foodoscope.Detail, error)
}

// CachedCatalog serves recipe-of-the-day ids and recipe details from a
// Store, falling through to the catalog on a miss. Failures are never
// cached, and a broken store only costs a log line.
type CachedCatalog struct {
	next  Catalog
	store Store
	ttl   time.Duration
	now   func() time.Time
	log   *logger.Logger
}

func NewCachedCatalog(next Catalog, store Store, ttl time.Duration, log *logger.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedCatalog{next: next, store: store, ttl: ttl, now: time.Now, log: log}
}

// RecipeOfTheDayID caches the id until the end of the current UTC day.
func (c *CachedCatalog) RecipeOfTheDayID(ctx context.Context) (string, error) {
	now := c.now().UTC()
	key := DailyKey(now)

	if data, ok := c.get(ctx, key); ok && len(data) > 0 {
		return string(data), nil
	}

	id, err := c.next.RecipeOfTheDayID(ctx)
	if err != nil {
		return "", err
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	c.set(ctx, key, []byte(id), midnight.Sub(now))
	return id, nil
}

func (c *CachedCatalog) RecipeDetail(ctx context.Context, id string) (*foodoscope.Detail, error) {
	key := DetailKey(id)

	if data, ok := c.get(ctx, key); ok {
		var detail foodoscope.Detail
		if err := json.Unmarshal(data, &detail); err == nil {
			return &detail, nil
		}
		c.log.Warn("discarding undecodable cache entry", "key", key)
	}

	detail, err := c.next.RecipeDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(detail); err == nil {
		c.set(ctx, key, data, c.ttl)
	}
	return detail, nil
}

func (c *CachedCatalog) get(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.log.Warn("cache read failed", "key", key, "error", err)
		return nil, false
	}
	return data, ok
}

func (c *CachedCatalog) set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.store.Set(ctx, key, value, ttl); err != nil {
		c.log.Warn("cache write failed", "key", key, "error", err)
	}
}

func DailyKey(day time.Time) string {
	return keyPrefix + "rotd:" + day.UTC().Format("2006-01-02")
}

func DetailKey(id string) string {
	return keyPrefix + "recipe:" + id
}
