package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Capability is a small key-value cache of confirmed access tokens, keyed by
// project slug and requester email. It mirrors the browser-side token cache:
// a hit only skips the lookup round-trip, it is never a security boundary.
// The token must still be re-validated against the access-request store
// before any gated resource is served.
type Capability interface {
	Get(ctx context.Context, slug, email string) (string, bool)
	Set(ctx context.Context, slug, email, token string)
	Clear(ctx context.Context, slug, email string)
}

const capabilityTTL = 30 * time.Minute

// redisCapability implements Capability on the shared Redis client.
type redisCapability struct {
	rdb *redis.Client
}

// NewCapability returns a Redis-backed capability cache. A nil client yields
// a cache that always misses.
func NewCapability(rdb *redis.Client) Capability {
	return &redisCapability{rdb: rdb}
}

func capabilityKey(slug, email string) string {
	return fmt.Sprintf("cap:%s:%s", slug, email)
}

func (c *redisCapability) Get(ctx context.Context, slug, email string) (string, bool) {
	if c.rdb == nil {
		return "", false
	}
	token, err := c.rdb.Get(ctx, capabilityKey(slug, email)).Result()
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (c *redisCapability) Set(ctx context.Context, slug, email, token string) {
	if c.rdb == nil || token == "" {
		return
	}
	c.rdb.Set(ctx, capabilityKey(slug, email), token, capabilityTTL)
}

func (c *redisCapability) Clear(ctx context.Context, slug, email string) {
	if c.rdb == nil {
		return
	}
	c.rdb.Del(ctx, capabilityKey(slug, email))
}
