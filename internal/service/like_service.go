package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"github.com/MuxN4/linkup/internal/repository/redis"
	"gorm.io/gorm"
)

type LikeService struct {
	repo  *mysql.LikeRepository
	posts *mysql.PostRepository
	cache *redis.LikeCache // nil when redis is not configured
	lock  *redis.DistLock
}

func NewLikeService(db *gorm.DB, cache *redis.LikeCache, lock *redis.DistLock) *LikeService {
	return &LikeService{
		repo:  &mysql.LikeRepository{DB: db},
		posts: &mysql.PostRepository{DB: db},
		cache: cache,
		lock:  lock,
	}
}

// Toggle flips the like state for (userID, postID) and returns the final
// state. A duplicate-key loss against a concurrent toggle is classified
// explicitly and folded into success: the other caller already produced the
// state this one was creating.
func (s *LikeService) Toggle(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 {
		return false, pkg.ErrUnauthenticated
	}
	if postID == 0 {
		return false, fmt.Errorf("%w: invalid post id", pkg.ErrInvalidOperation)
	}

	post, err := s.posts.FindByID(ctx, postID)
	if pkg.IsNotFound(err) {
		return false, fmt.Errorf("%w: post %d", pkg.ErrNotFound, postID)
	}
	if err != nil {
		return false, storeErr("toggle like", err)
	}

	liked, err := s.repo.Toggle(ctx, userID, post)
	if pkg.IsDuplicateKey(err) {
		// Benign uniqueness race: re-read and report the current state.
		liked, err = s.repo.IsLiked(ctx, userID, postID)
		if err != nil {
			return false, storeErr("toggle like re-read", err)
		}
		return liked, nil
	}
	if err != nil {
		return false, storeErr("toggle like", err)
	}

	s.maintainCache(ctx, userID, postID, liked)
	return liked, nil
}

// maintainCache runs after the database commit. A failed cache update
// drops the counter key instead, leaving the locked read path to rebuild
// it from the store. Failures here never fail the mutation.
func (s *LikeService) maintainCache(ctx context.Context, userID, postID uint64, liked bool) {
	if s.cache == nil {
		return
	}
	var err error
	if liked {
		err = s.cache.AddLike(ctx, userID, postID)
	} else {
		err = s.cache.RemoveLike(ctx, userID, postID)
	}
	if err != nil {
		_ = s.cache.DeleteCount(ctx, postID, 100*time.Millisecond)
	}
}

// IsLiked answers from the cached set when present and falls back to the
// store, lazily warming the cache on the way out.
func (s *LikeService) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	if userID == 0 || postID == 0 {
		return false, fmt.Errorf("%w: invalid id", pkg.ErrInvalidOperation)
	}
	if s.cache != nil {
		if b, ok, err := s.cache.IsLikedCached(ctx, userID, postID); err == nil && ok {
			return b, nil
		}
	}
	b, err := s.repo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, storeErr("is liked", err)
	}
	if s.cache != nil {
		s.cache.WarmIsLiked(ctx, userID, postID, b)
	}
	return b, nil
}

// Count returns a post's like count, rebuilding the cached counter under
// the per-post lock on a miss so a cold key does not stampede the store.
func (s *LikeService) Count(ctx context.Context, postID uint64) (int64, error) {
	if postID == 0 {
		return 0, fmt.Errorf("%w: invalid post id", pkg.ErrInvalidOperation)
	}
	if s.cache == nil {
		return s.countFromStore(ctx, postID)
	}
	if v, ok, err := s.cache.GetLikeCountCached(ctx, postID); err == nil && ok {
		return v, nil
	}
	if s.lock == nil {
		return s.countFromStore(ctx, postID)
	}

	token := fmt.Sprintf("cnt-%d-%d", postID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, postID, token)
	if got {
		defer s.lock.Release(ctx, postID, token)
		// double check: another rebuilder may have won before us
		if v, ok, err := s.cache.GetLikeCountCached(ctx, postID); err == nil && ok {
			return v, nil
		}
		v, err := s.countFromStore(ctx, postID)
		if err != nil {
			return 0, err
		}
		_ = s.cache.SetLikeCount(ctx, postID, v)
		return v, nil
	}

	// lost the rebuild race; back off briefly and try the cache once more
	time.Sleep(50 * time.Millisecond)
	if v, ok, err := s.cache.GetLikeCountCached(ctx, postID); err == nil && ok {
		return v, nil
	}
	return s.countFromStore(ctx, postID)
}

func (s *LikeService) countFromStore(ctx context.Context, postID uint64) (int64, error) {
	v, err := s.repo.CountByPost(ctx, postID)
	if err != nil {
		return 0, storeErr("like count", err)
	}
	return v, nil
}
