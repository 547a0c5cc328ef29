package mysql

import (
	"context"

	"github.com/MuxN4/linkup/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

// CreateIdempotent inserts a user unless one already exists for the same
// external identity. Concurrent first-sight callers race on the unique
// index; the loser's insert is a no-op and it falls back to the lookup.
func (r *UserRepository) CreateIdempotent(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoNothing: true,
	}).Create(user).Error
}

func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("handle = ?", handle).First(&user).Error
	return &user, err
}

// UpdateProfile touches mutable profile fields only; the identity binding
// and handle never change after creation.
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint64, name, bio, avatarURL string) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "bio": bio, "avatar_url": avatarURL}).Error
}

// Suggest returns up to limit users the viewer does not already follow,
// excluding the viewer.
func (r *UserRepository) Suggest(ctx context.Context, viewerID uint64, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 20 {
		limit = 3
	}
	followed := r.DB.Model(&model.Follow{}).
		Select("following_id").
		Where("follower_id = ?", viewerID)

	var users []model.User
	err := r.DB.WithContext(ctx).
		Where("id <> ?", viewerID).
		Where("id NOT IN (?)", followed).
		Order("id DESC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *UserRepository) CountPosts(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", userID).Count(&n).Error
	return n, err
}
