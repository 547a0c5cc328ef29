package mysql

import (
	"context"

	"github.com/MuxN4/linkup/internal/model"
	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "post", post.AuthorID, post.ID)
	})
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, id).Error
	return &post, err
}

// DeleteCascade removes a post and everything that exists only in reference
// to it, in one transaction: post-linked notifications first, then likes,
// then comments, then the post itself. A failure anywhere rolls the whole
// group back so readers never observe a partial cascade.
func (r *PostRepository) DeleteCascade(ctx context.Context, postID, authorID uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Post{}, postID).Error; err != nil {
			return err
		}
		return insertOutbox(tx, "post_delete", authorID, postID)
	})
}

// ListFeed loads all posts newest first with their author, ascending
// comments and like rows, inside a single read transaction so the embedded
// collections and anything counted from them agree with each other.
func (r *PostRepository) ListFeed(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return feedScope(tx).Find(&posts).Error
	})
	return posts, err
}

// ListByAuthor returns one author's posts, same shape as the feed.
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return feedScope(tx).Where("author_id = ?", authorID).Find(&posts).Error
	})
	return posts, err
}

// ListLikedBy returns the posts a user has liked, same shape as the feed.
func (r *PostRepository) ListLikedBy(ctx context.Context, userID uint64) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return feedScope(tx).
			Where("posts.id IN (?)", tx.Model(&model.Like{}).Select("post_id").Where("user_id = ?", userID)).
			Find(&posts).Error
	})
	return posts, err
}

func feedScope(tx *gorm.DB) *gorm.DB {
	return tx.Model(&model.Post{}).
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Author").
		Preload("Likes").
		Order("created_at DESC, id DESC")
}
