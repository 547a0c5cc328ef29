package service

import (
	"context"
	"time"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"gorm.io/gorm"
)

type PostSummary struct {
	ID      uint64 `json:"id"`
	Content string `json:"content"`
}

type CommentSummary struct {
	ID      uint64 `json:"id"`
	Content string `json:"content"`
}

type NotificationView struct {
	ID        uint64                 `json:"id"`
	Kind      model.NotificationKind `json:"kind"`
	Actor     AuthorSummary          `json:"actor"`
	Post      *PostSummary           `json:"post,omitempty"`
	Comment   *CommentSummary        `json:"comment,omitempty"`
	IsRead    bool                   `json:"is_read"`
	CreatedAt time.Time              `json:"created_at"`
}

type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{repo: &mysql.NotificationRepository{DB: db}}
}

// List returns the user's notifications newest first, resolved with actor
// and related post/comment summaries. Pure read.
func (s *NotificationService) List(ctx context.Context, userID uint64) ([]NotificationView, error) {
	if userID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	rows, err := s.repo.ListByRecipient(ctx, userID)
	if err != nil {
		return nil, storeErr("list notifications", err)
	}

	views := make([]NotificationView, 0, len(rows))
	for i := range rows {
		n := &rows[i]
		v := NotificationView{
			ID:        n.ID,
			Kind:      n.Kind,
			Actor:     summarize(&n.Actor),
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		}
		if n.Post != nil {
			v.Post = &PostSummary{ID: n.Post.ID, Content: n.Post.Content}
		}
		if n.Comment != nil {
			v.Comment = &CommentSummary{ID: n.Comment.ID, Content: n.Comment.Content}
		}
		views = append(views, v)
	}
	return views, nil
}

// MarkRead flips read state on the user's own notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint64, ids []uint64) error {
	if userID == 0 {
		return pkg.ErrUnauthenticated
	}
	if err := s.repo.MarkRead(ctx, userID, ids); err != nil {
		return storeErr("mark notifications read", err)
	}
	return nil
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	if userID == 0 {
		return 0, pkg.ErrUnauthenticated
	}
	n, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, storeErr("count unread notifications", err)
	}
	return n, nil
}
