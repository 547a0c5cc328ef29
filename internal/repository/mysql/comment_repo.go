package mysql

import (
	"context"

	"github.com/MuxN4/linkup/internal/model"
	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

// Create inserts the comment and, when the commenter is not the post's
// author, a COMMENT notification referencing both, in one transaction.
func (r *CommentRepository) Create(ctx context.Context, post *model.Post, comment *model.Comment) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if post.AuthorID != comment.AuthorID {
			postID := post.ID
			commentID := comment.ID
			n := &model.Notification{
				RecipientID: post.AuthorID,
				ActorID:     comment.AuthorID,
				Kind:        model.NotificationComment,
				PostID:      &postID,
				CommentID:   &commentID,
			}
			if err := tx.Create(n).Error; err != nil {
				return err
			}
		}
		return insertOutbox(tx, "comment", comment.AuthorID, post.ID)
	})
}

// ListByPost returns a post's comments in creation order, id as tie-break.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&list).Error
	return list, err
}
