package mysql

import (
	"context"
	"errors"

	"github.com/MuxN4/linkup/internal/model"
	"gorm.io/gorm"
)

type FollowRepository struct {
	DB *gorm.DB
}

// FollowCountReconcilerRepo serves the background sweep that corrects drift
// in the denormalized follower/following counters.
type FollowCountReconcilerRepo struct {
	DB *gorm.DB
}

// Pair carries one user's stored counters for reconciliation.
type Pair struct {
	ID             uint64
	FollowingCount int64
	FollowerCount  int64
}

// Toggle flips the follow state for (followerID, followingID) and returns
// the final state. The follow insert, the FOLLOW notification for the
// target and both counter adjustments commit together; unfollow removes the
// row without a notification. Self-follow never reaches this method.
func (r *FollowRepository) Toggle(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var following bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Follow
		err := tx.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&model.Follow{}, existing.ID).Error; err != nil {
				return err
			}
			if err := adjustCounts(tx, followerID, followingID, -1); err != nil {
				return err
			}
			following = false
			return insertOutbox(tx, "unfollow", followerID, followingID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&model.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
			return err
		}
		n := &model.Notification{
			RecipientID: followingID,
			ActorID:     followerID,
			Kind:        model.NotificationFollow,
		}
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		if err := adjustCounts(tx, followerID, followingID, +1); err != nil {
			return err
		}
		following = true
		return insertOutbox(tx, "follow", followerID, followingID)
	})
	return following, err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListFollowings pages over the users userID follows, newest follow first.
func (r *FollowRepository) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Follow
	// limit+1 so the next cursor is known without a second query
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// ListFollowers pages over the users following userID, newest follow first.
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	q := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var rows []model.Follow
	if err := q.Order("id DESC").Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	var next uint64
	if len(rows) > limit {
		next = rows[limit-1].ID
		rows = rows[:limit]
	}
	return rows, next, nil
}

// adjustCounts moves the denormalized counters on both sides of the edge.
// The CASE floor keeps a decrement from ever going negative; drift beyond
// that is the reconciler's job.
func adjustCounts(tx *gorm.DB, followerID, followingID uint64, delta int64) error {
	if delta >= 0 {
		if err := tx.Model(&model.User{}).Where("id = ?", followerID).
			UpdateColumn("following_count", gorm.Expr("following_count + ?", delta)).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).Where("id = ?", followingID).
			UpdateColumn("follower_count", gorm.Expr("follower_count + ?", delta)).Error
	}
	if err := tx.Model(&model.User{}).Where("id = ?", followerID).
		UpdateColumn("following_count", gorm.Expr("CASE WHEN following_count > 0 THEN following_count - 1 ELSE 0 END")).Error; err != nil {
		return err
	}
	return tx.Model(&model.User{}).Where("id = ?", followingID).
		UpdateColumn("follower_count", gorm.Expr("CASE WHEN follower_count > 0 THEN follower_count - 1 ELSE 0 END")).Error
}

// ReconcileList pulls the next batch of users by id keyset.
func (r *FollowCountReconcilerRepo) ReconcileList(ctx context.Context, batchSize int, lastID uint64) ([]Pair, uint64, error) {
	var list []Pair
	if err := r.DB.WithContext(ctx).Model(&model.User{}).
		Select("id", "following_count", "follower_count").
		Where("id > ?", lastID).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, lastID, err
	}
	if len(list) == 0 {
		return nil, lastID, nil
	}
	return list, list[len(list)-1].ID, nil
}

// RealFollowings counts the follow rows where the user is the follower.
func (r *FollowCountReconcilerRepo) RealFollowings(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Count(&n).Error
	return n, err
}

// RealFollowers counts the follow rows where the user is the target.
func (r *FollowCountReconcilerRepo) RealFollowers(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Follow{}).
		Where("following_id = ?", userID).
		Count(&n).Error
	return n, err
}

func (r *FollowCountReconcilerRepo) ReconcileFollowings(ctx context.Context, userID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("following_count", real).Error
}

func (r *FollowCountReconcilerRepo) ReconcileFollowers(ctx context.Context, userID uint64, real int64) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		UpdateColumn("follower_count", real).Error
}
