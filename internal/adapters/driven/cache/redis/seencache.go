// Package redis implements the optional seen-item cache on Redis.
// The cache fronts the duplicate checks against MongoDB so repeated
// sweeps over the same channels skip the database round-trip for items
// ingested recently.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MdHasib01/commserver/internal/core/ports/driven"
)

// Keys expire so a flushed or repopulated database is re-checked
// eventually instead of being shadowed by the cache forever.
const (
	keyPrefix = "commserver:seen:"
	seenTTL   = 14 * 24 * time.Hour
)

// Ensure SeenCache implements the interface.
var _ driven.SeenCache = (*SeenCache)(nil)

// SeenCache is a Redis-backed implementation of driven.SeenCache.
type SeenCache struct {
	client *goredis.Client
}

// NewSeenCache connects to the Redis instance at addr and verifies the
// connection with a ping. addr may be a redis:// URL or a host:port.
func NewSeenCache(ctx context.Context, addr string) (*SeenCache, error) {
	opt, err := goredis.ParseURL(addr)
	if err != nil {
		opt = &goredis.Options{Addr: addr}
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &SeenCache{client: client}, nil
}

// Seen reports whether key was marked within the cache TTL.
func (c *SeenCache) Seen(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("checking seen key: %w", err)
	}
	return n > 0, nil
}

// Mark records key as seen.
func (c *SeenCache) Mark(ctx context.Context, key string) error {
	if err := c.client.Set(ctx, keyPrefix+key, "1", seenTTL).Err(); err != nil {
		return fmt.Errorf("marking seen key: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *SeenCache) Close() error {
	return c.client.Close()
}
