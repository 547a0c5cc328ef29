package service

import (
	"context"
	"fmt"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"gorm.io/gorm"
)

type FollowService struct {
	repo  *mysql.FollowRepository
	users *mysql.UserRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		repo:  &mysql.FollowRepository{DB: db},
		users: &mysql.UserRepository{DB: db},
	}
}

// Toggle flips the follow state from followerID towards targetID and
// returns the final state. Self-follow is rejected before any write, so the
// FOLLOW notification on the follow path is unconditional.
func (s *FollowService) Toggle(ctx context.Context, followerID, targetID uint64) (bool, error) {
	if followerID == 0 {
		return false, pkg.ErrUnauthenticated
	}
	if targetID == 0 {
		return false, fmt.Errorf("%w: invalid target user id", pkg.ErrInvalidOperation)
	}
	if followerID == targetID {
		return false, fmt.Errorf("%w: cannot follow yourself", pkg.ErrInvalidOperation)
	}

	if _, err := s.users.FindByID(ctx, targetID); err != nil {
		if pkg.IsNotFound(err) {
			return false, fmt.Errorf("%w: user %d", pkg.ErrNotFound, targetID)
		}
		return false, storeErr("toggle follow", err)
	}

	following, err := s.repo.Toggle(ctx, followerID, targetID)
	if pkg.IsDuplicateKey(err) {
		// Benign uniqueness race: the concurrent toggle already created the
		// edge; report the current state.
		following, err = s.repo.IsFollowing(ctx, followerID, targetID)
		if err != nil {
			return false, storeErr("toggle follow re-read", err)
		}
		return following, nil
	}
	if err != nil {
		return false, storeErr("toggle follow", err)
	}
	return following, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint64) (bool, error) {
	if followerID == 0 || targetID == 0 {
		return false, fmt.Errorf("%w: invalid user id", pkg.ErrInvalidOperation)
	}
	ok, err := s.repo.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return false, storeErr("is following", err)
	}
	return ok, nil
}

func (s *FollowService) ListFollowings(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	rows, next, err := s.repo.ListFollowings(ctx, userID, cursor, limit)
	if err != nil {
		return nil, 0, storeErr("list followings", err)
	}
	return rows, next, nil
}

func (s *FollowService) ListFollowers(ctx context.Context, userID uint64, cursor uint64, limit int) ([]model.Follow, uint64, error) {
	rows, next, err := s.repo.ListFollowers(ctx, userID, cursor, limit)
	if err != nil {
		return nil, 0, storeErr("list followers", err)
	}
	return rows, next, nil
}
