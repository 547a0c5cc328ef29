package service

import (
	"testing"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfFollowRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	user := seedUser(t, db, "ada")

	_, err := svc.Toggle(ctxb(), user.ID, user.ID)
	require.ErrorIs(t, err, pkg.ErrInvalidOperation)

	var follows, notifications int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&follows).Error)
	require.NoError(t, db.Model(&model.Notification{}).Count(&notifications).Error)
	assert.Zero(t, follows, "rejection happens before any write")
	assert.Zero(t, notifications)
}

func TestToggleFollow(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	target := seedUser(t, db, "ada")
	follower := seedUser(t, db, "grace")

	following, err := svc.Toggle(ctxb(), follower.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, following)

	ok, err := svc.IsFollowing(ctxb(), follower.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	var n model.Notification
	require.NoError(t, db.Where("recipient_id = ?", target.ID).First(&n).Error)
	assert.Equal(t, model.NotificationFollow, n.Kind)
	assert.Equal(t, follower.ID, n.ActorID)
	assert.Nil(t, n.PostID)

	var targetRow, followerRow model.User
	require.NoError(t, db.First(&targetRow, target.ID).Error)
	require.NoError(t, db.First(&followerRow, follower.ID).Error)
	assert.EqualValues(t, 1, targetRow.FollowerCount)
	assert.EqualValues(t, 1, followerRow.FollowingCount)

	// re-invoke: the toggle removes the edge, no duplicate notification
	following, err = svc.Toggle(ctxb(), follower.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, following)

	ok, err = svc.IsFollowing(ctxb(), follower.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.EqualValues(t, 1, notificationCount(t, db, target.ID))

	require.NoError(t, db.First(&targetRow, target.ID).Error)
	require.NoError(t, db.First(&followerRow, follower.ID).Error)
	assert.Zero(t, targetRow.FollowerCount)
	assert.Zero(t, followerRow.FollowingCount)
}

func TestToggleFollowMissingTarget(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	follower := seedUser(t, db, "grace")

	_, err := svc.Toggle(ctxb(), follower.ID, 9999)
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestToggleFollowRequiresActor(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	target := seedUser(t, db, "ada")

	_, err := svc.Toggle(ctxb(), 0, target.ID)
	require.ErrorIs(t, err, pkg.ErrUnauthenticated)
}

func TestListFollowersPagination(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	target := seedUser(t, db, "ada")

	for _, h := range []string{"u1", "u2", "u3"} {
		u := seedUser(t, db, h)
		_, err := svc.Toggle(ctxb(), u.ID, target.ID)
		require.NoError(t, err)
	}

	rows, next, err := svc.ListFollowers(ctxb(), target.ID, 0, 2)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotZero(t, next)

	rest, next2, err := svc.ListFollowers(ctxb(), target.ID, next, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Zero(t, next2)
}
