package mysql

import (
	"context"
	"errors"

	"github.com/MuxN4/linkup/internal/model"
	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

// Toggle flips the like state for (userID, post) and returns the final
// state: liked=true means the call ended with the like present. The like
// insert and the notification for the post's author commit together or not
// at all; no notification is written when the actor is the author, and none
// is written on the unlike path.
func (r *LikeRepository) Toggle(ctx context.Context, userID uint64, post *model.Post) (bool, error) {
	var liked bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, post.ID).First(&existing).Error
		if err == nil {
			if err := tx.Delete(&model.Like{}, existing.ID).Error; err != nil {
				return err
			}
			liked = false
			return insertOutbox(tx, "unlike", userID, post.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err := tx.Create(&model.Like{UserID: userID, PostID: post.ID}).Error; err != nil {
			return err
		}
		if post.AuthorID != userID {
			postID := post.ID
			n := &model.Notification{
				RecipientID: post.AuthorID,
				ActorID:     userID,
				Kind:        model.NotificationLike,
				PostID:      &postID,
			}
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		liked = true
		return insertOutbox(tx, "like", userID, post.ID)
	})
	return liked, err
}

func (r *LikeRepository) IsLiked(ctx context.Context, userID, postID uint64) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *LikeRepository) CountByPost(ctx context.Context, postID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&model.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
