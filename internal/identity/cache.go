package identity

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "identity:token:" // identity:token:{sha256(token)} -> user id

// Cached remembers successful resolutions in redis for ttl. Failures are never
// cached, and redis errors fall through to the wrapped resolver.
type Cached struct {
	next   Resolver
	client *redis.Client
	ttl    time.Duration
}

func NewCached(next Resolver, client *redis.Client, ttl time.Duration) *Cached {
	return &Cached{next: next, client: client, ttl: ttl}
}

func (c *Cached) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return c.next.Resolve(ctx, token)
	}

	key := cacheKey(token)
	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if id, perr := strconv.ParseInt(cached, 10, 64); perr == nil {
			return id, nil
		}
		zap.L().Warn("Discarding unreadable identity cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		zap.L().Warn("Identity cache lookup failed", zap.Error(err))
	}

	id, err := c.next.Resolve(ctx, token)
	if err != nil {
		return 0, err
	}

	if err := c.client.Set(ctx, key, strconv.FormatInt(id, 10), c.ttl).Err(); err != nil {
		zap.L().Warn("Identity cache store failed", zap.Error(err))
	}
	return id, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
