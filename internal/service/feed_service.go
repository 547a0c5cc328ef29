package service

import (
	"context"
	"time"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"gorm.io/gorm"
)

// AuthorSummary is the author shape embedded in feed and notification views.
type AuthorSummary struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
}

type CommentView struct {
	ID        uint64        `json:"id"`
	Author    AuthorSummary `json:"author"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}

// PostView embeds everything one feed entry needs. LikeCount and
// CommentCount are derived from the embedded collections of the same read,
// so they can never disagree with them.
type PostView struct {
	ID           uint64        `json:"id"`
	Author       AuthorSummary `json:"author"`
	Content      string        `json:"content"`
	ImageURL     string        `json:"image_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	Comments     []CommentView `json:"comments"`
	LikeUserIDs  []uint64      `json:"like_user_ids"`
	LikedByMe    bool          `json:"liked_by_me"`
	LikeCount    int           `json:"like_count"`
	CommentCount int           `json:"comment_count"`
}

type FeedService struct {
	repo *mysql.PostRepository
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{repo: &mysql.PostRepository{DB: db}}
}

// ListPosts returns the feed newest first. viewerID 0 means no session;
// LikedByMe is then always false.
func (s *FeedService) ListPosts(ctx context.Context, viewerID uint64) ([]PostView, error) {
	posts, err := s.repo.ListFeed(ctx)
	if err != nil {
		return nil, storeErr("list feed", err)
	}
	return buildPostViews(posts, viewerID), nil
}

func buildPostViews(posts []model.Post, viewerID uint64) []PostView {
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		views = append(views, buildPostView(&posts[i], viewerID))
	}
	return views
}

func buildPostView(post *model.Post, viewerID uint64) PostView {
	comments := make([]CommentView, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, CommentView{
			ID:        c.ID,
			Author:    summarize(&c.Author),
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}
	likeIDs := make([]uint64, 0, len(post.Likes))
	likedByMe := false
	for _, l := range post.Likes {
		likeIDs = append(likeIDs, l.UserID)
		if viewerID != 0 && l.UserID == viewerID {
			likedByMe = true
		}
	}
	return PostView{
		ID:           post.ID,
		Author:       summarize(&post.Author),
		Content:      post.Content,
		ImageURL:     post.ImageURL,
		CreatedAt:    post.CreatedAt,
		Comments:     comments,
		LikeUserIDs:  likeIDs,
		LikedByMe:    likedByMe,
		LikeCount:    len(likeIDs),
		CommentCount: len(comments),
	}
}

func summarize(u *model.User) AuthorSummary {
	return AuthorSummary{
		ID:        u.ID,
		Name:      u.Name,
		Handle:    u.Handle,
		AvatarURL: u.AvatarURL,
	}
}
