package mysql

import (
	"context"

	"github.com/MuxN4/linkup/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

// ListByRecipient returns a user's notifications newest first, resolved
// with the acting user and any related post/comment.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, userID uint64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.WithContext(ctx).
		Preload("Actor").
		Preload("Post").
		Preload("Comment").
		Where("recipient_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error
	return list, err
}

// MarkRead flips is_read on the recipient's own rows only.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID uint64, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND id IN ?", userID, ids).
		Update("is_read", true).Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// CountByRecipient is mostly useful to tests and metrics.
func (r *NotificationRepository) CountByRecipient(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient_id = ?", userID).
		Count(&n).Error
	return n, err
}
