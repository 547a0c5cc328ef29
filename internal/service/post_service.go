package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"github.com/MuxN4/linkup/internal/repository/redis"
	"gorm.io/gorm"
)

type PostService struct {
	repo     *mysql.PostRepository
	comments *mysql.CommentRepository
	cache    *redis.LikeCache // nil when redis is not configured
}

func NewPostService(db *gorm.DB, cache *redis.LikeCache) *PostService {
	return &PostService{
		repo:     &mysql.PostRepository{DB: db},
		comments: &mysql.CommentRepository{DB: db},
		cache:    cache,
	}
}

// CreatePost inserts a post owned by the acting user. No side effects
// beyond existence.
func (s *PostService) CreatePost(ctx context.Context, userID uint64, content, imageURL string) (*model.Post, error) {
	if userID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: post content required", pkg.ErrInvalidOperation)
	}

	post := &model.Post{
		AuthorID: userID,
		Content:  content,
		ImageURL: imageURL,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, storeErr("create post", err)
	}
	return post, nil
}

// DeletePost removes the acting user's own post with its full cascade.
// Validation happens before any write; the cascade itself is one
// transaction, so a failure leaves the pre-delete state intact.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint64) error {
	if userID == 0 {
		return pkg.ErrUnauthenticated
	}

	post, err := s.repo.FindByID(ctx, postID)
	if pkg.IsNotFound(err) {
		return fmt.Errorf("%w: post %d", pkg.ErrNotFound, postID)
	}
	if err != nil {
		return storeErr("delete post", err)
	}
	if post.AuthorID != userID {
		return fmt.Errorf("%w: only the author can delete a post", pkg.ErrUnauthorized)
	}

	if err := s.repo.DeleteCascade(ctx, postID, userID); err != nil {
		return storeErr("delete post cascade", err)
	}
	if s.cache != nil {
		_ = s.cache.DeletePost(ctx, postID)
	}
	return nil
}

// CreateComment adds a comment and, when the post belongs to someone else,
// a COMMENT notification in the same transaction.
func (s *PostService) CreateComment(ctx context.Context, userID, postID uint64, content string) (*model.Comment, error) {
	if userID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content required", pkg.ErrInvalidOperation)
	}

	post, err := s.repo.FindByID(ctx, postID)
	if pkg.IsNotFound(err) {
		return nil, fmt.Errorf("%w: post %d", pkg.ErrNotFound, postID)
	}
	if err != nil {
		return nil, storeErr("create comment", err)
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, post, comment); err != nil {
		return nil, storeErr("create comment", err)
	}
	return comment, nil
}

// ListComments returns a post's comments in creation order.
func (s *PostService) ListComments(ctx context.Context, postID uint64) ([]model.Comment, error) {
	if _, err := s.repo.FindByID(ctx, postID); err != nil {
		if pkg.IsNotFound(err) {
			return nil, fmt.Errorf("%w: post %d", pkg.ErrNotFound, postID)
		}
		return nil, storeErr("list comments", err)
	}
	list, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, storeErr("list comments", err)
	}
	return list, nil
}
