package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LikeSetTTL       = 24 * time.Hour
	LikeCntTTL       = 24 * time.Hour
	LockTTL          = 300 * time.Millisecond
	LikeSetKeyPrefix = "linkup:like:set:post" // user ids that like a post
	LikeCntKeyPrefix = "linkup:like:cnt:post" // cached like count per post
	LockKeyPrefix    = "linkup:lock:like:post"
)

// LikeCache keeps a per-post set of liking users and a like counter. Both
// are best-effort: the relational store stays authoritative and every
// cache failure is ignored by callers. TTLs bound the sets so posts that
// stop being read age out.
type LikeCache struct {
	likeSetTTL time.Duration
	likeCntTTL time.Duration
}

// DistLock guards like-count rebuilds so a cache miss storm does not send
// every reader to the database at once.
type DistLock struct {
	RDB *redis.Client
}

func NewLikeCache() *LikeCache {
	return &LikeCache{
		likeSetTTL: LikeSetTTL,
		likeCntTTL: LikeCntTTL,
	}
}

func (c *LikeCache) likeSetKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeSetKeyPrefix, postID)
}
func (c *LikeCache) likeCntKey(postID uint64) string {
	return fmt.Sprintf("%s:%d", LikeCntKeyPrefix, postID)
}

// AddLike is called after the database commit on the like path.
func (c *LikeCache) AddLike(ctx context.Context, userID, postID uint64) error {
	k := c.likeSetKey(postID)
	if err := Client.SAdd(ctx, k, userID).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, k, c.likeSetTTL).Err()

	ck := c.likeCntKey(postID)
	if err := Client.Incr(ctx, ck).Err(); err != nil {
		return err
	}
	_ = Client.Expire(ctx, ck, c.likeCntTTL).Err()
	return nil
}

// RemoveLike is called after the database commit on the unlike path. The
// counter decrement runs under WATCH so it never goes negative.
func (c *LikeCache) RemoveLike(ctx context.Context, userID, postID uint64) error {
	k := c.likeSetKey(postID)
	if err := Client.SRem(ctx, k, userID).Err(); err != nil {
		return err
	}
	ck := c.likeCntKey(postID)
	return Client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, ck).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if val <= 0 {
			// missing or already zero; the reconciling read path rebuilds it
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.Decr(ctx, ck)
			return nil
		})
		return err
	}, ck)
}

// IsLikedCached returns (liked, hit, err); hit is false when the set for
// this post is not cached at all.
func (c *LikeCache) IsLikedCached(ctx context.Context, userID, postID uint64) (bool, bool, error) {
	k := c.likeSetKey(postID)
	exists, err := Client.Exists(ctx, k).Result()
	if err != nil {
		return false, false, err
	}
	if exists == 0 {
		return false, false, nil
	}
	b, err := Client.SIsMember(ctx, k, userID).Result()
	return b, true, err
}

func (c *LikeCache) GetLikeCountCached(ctx context.Context, postID uint64) (int64, bool, error) {
	val, err := Client.Get(ctx, c.likeCntKey(postID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	return val, true, err
}

func (c *LikeCache) SetLikeCount(ctx context.Context, postID uint64, cnt int64) error {
	return Client.Set(ctx, c.likeCntKey(postID), cnt, c.likeCntTTL).Err()
}

// WarmIsLiked lazily backfills membership, but only into sets that already
// exist; creating sets on read would grow the keyspace without bound.
func (c *LikeCache) WarmIsLiked(ctx context.Context, userID, postID uint64, liked bool) {
	k := c.likeSetKey(postID)
	if ok, _ := Client.Exists(ctx, k).Result(); ok > 0 {
		if liked {
			_ = Client.SAdd(ctx, k, userID).Err()
		} else {
			_ = Client.SRem(ctx, k, userID).Err()
		}
		_ = Client.Expire(ctx, k, c.likeSetTTL).Err()
	}
}

// DeleteCount drops the counter key; with a delay it deletes a second time
// to close the window where a concurrent reader re-fills a stale value.
func (c *LikeCache) DeleteCount(ctx context.Context, postID uint64, delay ...time.Duration) error {
	key := c.likeCntKey(postID)
	if err := Client.Del(ctx, key).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if len(delay) > 0 && delay[0] > 0 {
		d := delay[0]
		go func() {
			t := time.NewTimer(d)
			defer t.Stop()
			<-t.C
			_ = Client.Del(context.Background(), key).Err()
		}()
	}
	return nil
}

// DeletePost drops both keys for a deleted post.
func (c *LikeCache) DeletePost(ctx context.Context, postID uint64) error {
	return Client.Del(ctx, c.likeSetKey(postID), c.likeCntKey(postID)).Err()
}

func (l *DistLock) Acquire(ctx context.Context, postID uint64, token string) (bool, error) {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	return l.RDB.SetNX(ctx, key, token, LockTTL).Result()
}

// Release compares the token and deletes in one Lua step so a lock that
// expired and was re-acquired by someone else is never released by us.
func (l *DistLock) Release(ctx context.Context, postID uint64, token string) error {
	key := fmt.Sprintf("%s:%d", LockKeyPrefix, postID)
	_, err := redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
else
  return 0
end`).Run(ctx, l.RDB, []string{key}, token).Result()
	return err
}
