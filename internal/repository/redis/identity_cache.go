package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrIdentityNotCached = errors.New("identity not cached")
	ErrRedisUnavailable  = errors.New("redis unavailable")
)

const (
	IdentityKeyPrefix = "linkup:identity:external"
	IdentityTTL       = 30 * time.Minute
)

// IdentityCache maps external identity references to internal user ids so
// the per-request resolution does not hit the database every time. The
// binding is immutable, so staleness is not a correctness concern; the TTL
// only bounds memory.
type IdentityCache struct{}

func (c *IdentityCache) key(externalID string) string {
	return fmt.Sprintf("%s:%s", IdentityKeyPrefix, externalID)
}

func (c *IdentityCache) Put(ctx context.Context, externalID string, userID uint64) error {
	if err := Client.Set(ctx, c.key(externalID), userID, IdentityTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (c *IdentityCache) Get(ctx context.Context, externalID string) (uint64, error) {
	val, err := Client.Get(ctx, c.key(externalID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrIdentityNotCached
	}
	if err != nil {
		return 0, ErrRedisUnavailable
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, ErrIdentityNotCached
	}
	return id, nil
}

func (c *IdentityCache) Delete(ctx context.Context, externalID string) error {
	if err := Client.Del(ctx, c.key(externalID)).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}
