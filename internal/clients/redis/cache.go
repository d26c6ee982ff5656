// Package redis caches the two hot read views (catalog listing, session
// listing). The cache is optional: when REDIS_ADDR is unset the app runs
// without it and every method on a nil *Cache is a safe no-op.
package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/daniluce/portfolio-backend/internal/platform/envutil"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

const (
	KeyPhotoList   = "catalog:photos:default"
	KeySessionList = "catalog:sessions"

	defaultTTL = 5 * time.Minute
)

type Cache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCache(log *logger.Logger) (*Cache, error) {
	addr := strings.TrimSpace(envutil.Str("REDIS_ADDR", ""))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	ttl := time.Duration(envutil.Int("CACHE_TTL_SECONDS", int(defaultTTL.Seconds()))) * time.Second
	return &Cache{
		log: log.With("service", "ListingCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

// Get returns the cached payload for key, or false on miss or error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.rdb == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		c.log.Warn("cache set failed", "key", key, "error", err)
	}
}

// InvalidateListings drops both read-view keys. Called after every write
// to the catalog so stale listings never outlive a mutation plus TTL.
func (c *Cache) InvalidateListings(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, KeyPhotoList, KeySessionList).Err(); err != nil {
		c.log.Warn("cache invalidate failed", "error", err)
	}
}

func (c *Cache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
