package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"gorm.io/gorm"
)

type Profile struct {
	AuthorSummary
	Bio            string `json:"bio"`
	PostCount      int64  `json:"post_count"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
}

type ProfileService struct {
	users   *mysql.UserRepository
	posts   *mysql.PostRepository
	follows *mysql.FollowRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		users:   &mysql.UserRepository{DB: db},
		posts:   &mysql.PostRepository{DB: db},
		follows: &mysql.FollowRepository{DB: db},
	}
}

// GetByHandle returns a user's public profile with post and follow counts.
func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*Profile, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, fmt.Errorf("%w: handle required", pkg.ErrInvalidOperation)
	}
	user, err := s.users.FindByHandle(ctx, handle)
	if pkg.IsNotFound(err) {
		return nil, fmt.Errorf("%w: user %q", pkg.ErrNotFound, handle)
	}
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	postCount, err := s.users.CountPosts(ctx, user.ID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	return &Profile{
		AuthorSummary:  summarize(user),
		Bio:            user.Bio,
		PostCount:      postCount,
		FollowerCount:  user.FollowerCount,
		FollowingCount: user.FollowingCount,
	}, nil
}

// ListUserPosts returns the user's own posts in feed shape.
func (s *ProfileService) ListUserPosts(ctx context.Context, userID, viewerID uint64) ([]PostView, error) {
	posts, err := s.posts.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, storeErr("list user posts", err)
	}
	return buildPostViews(posts, viewerID), nil
}

// ListLikedPosts returns the posts the user has liked, in feed shape.
func (s *ProfileService) ListLikedPosts(ctx context.Context, userID, viewerID uint64) ([]PostView, error) {
	posts, err := s.posts.ListLikedBy(ctx, userID)
	if err != nil {
		return nil, storeErr("list liked posts", err)
	}
	return buildPostViews(posts, viewerID), nil
}

func (s *ProfileService) IsFollowing(ctx context.Context, viewerID, targetID uint64) (bool, error) {
	if viewerID == 0 {
		return false, nil
	}
	ok, err := s.follows.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return false, storeErr("is following", err)
	}
	return ok, nil
}

// SuggestUsers returns up to n users the viewer might follow, excluding the
// viewer and anyone already followed.
func (s *ProfileService) SuggestUsers(ctx context.Context, viewerID uint64, n int) ([]AuthorSummary, error) {
	if viewerID == 0 {
		return nil, pkg.ErrUnauthenticated
	}
	users, err := s.users.Suggest(ctx, viewerID, n)
	if err != nil {
		return nil, storeErr("suggest users", err)
	}
	out := make([]AuthorSummary, 0, len(users))
	for i := range users {
		out = append(out, summarize(&users[i]))
	}
	return out, nil
}

// UpdateProfile changes the mutable profile fields. The external identity
// binding and the handle are immutable after creation.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint64, name, bio, avatarURL string) error {
	if userID == 0 {
		return pkg.ErrUnauthenticated
	}
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name required", pkg.ErrInvalidOperation)
	}
	if err := s.users.UpdateProfile(ctx, userID, name, bio, avatarURL); err != nil {
		return storeErr("update profile", err)
	}
	return nil
}
