package service

import (
	"fmt"
	"testing"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostRequiresContent(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	user := seedUser(t, db, "ada")

	_, err := svc.CreatePost(ctxb(), user.ID, "   ", "")
	require.ErrorIs(t, err, pkg.ErrInvalidOperation)

	post, err := svc.CreatePost(ctxb(), user.ID, "hello", "")
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
}

func TestCreateCommentValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	author := seedUser(t, db, "ada")
	post := seedPost(t, db, author, "hello")

	_, err := svc.CreateComment(ctxb(), author.ID, post.ID, "  \n ")
	require.ErrorIs(t, err, pkg.ErrInvalidOperation)

	_, err = svc.CreateComment(ctxb(), author.ID, 9999, "hi")
	require.ErrorIs(t, err, pkg.ErrNotFound)

	_, err = svc.CreateComment(ctxb(), 0, post.ID, "hi")
	require.ErrorIs(t, err, pkg.ErrUnauthenticated)
}

func TestCreateCommentNotification(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	author := seedUser(t, db, "ada")
	commenter := seedUser(t, db, "grace")
	post := seedPost(t, db, author, "hello")

	comment, err := svc.CreateComment(ctxb(), commenter.ID, post.ID, "nice one")
	require.NoError(t, err)

	var n model.Notification
	require.NoError(t, db.Where("recipient_id = ?", author.ID).First(&n).Error)
	assert.Equal(t, model.NotificationComment, n.Kind)
	assert.Equal(t, commenter.ID, n.ActorID)
	require.NotNil(t, n.PostID)
	require.NotNil(t, n.CommentID)
	assert.Equal(t, post.ID, *n.PostID)
	assert.Equal(t, comment.ID, *n.CommentID)

	// commenting on one's own post creates no notification
	_, err = svc.CreateComment(ctxb(), author.ID, post.ID, "thanks!")
	require.NoError(t, err)
	assert.EqualValues(t, 1, notificationCount(t, db, author.ID))
}

func TestCommentOrderingStable(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	author := seedUser(t, db, "ada")
	a := seedUser(t, db, "grace")
	b := seedUser(t, db, "linus")
	post := seedPost(t, db, author, "thread")

	// interleave two actors; inserts land inside the same wall-clock tick,
	// so ordering must come from the monotonic id tie-break
	for i := 0; i < 6; i++ {
		actor := a
		if i%2 == 1 {
			actor = b
		}
		_, err := svc.CreateComment(ctxb(), actor.ID, post.ID, fmt.Sprintf("c%d", i))
		require.NoError(t, err)
	}

	list, err := svc.ListComments(ctxb(), post.ID)
	require.NoError(t, err)
	require.Len(t, list, 6)
	for i := range list {
		assert.Equal(t, fmt.Sprintf("c%d", i), list[i].Content)
		if i > 0 {
			assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt),
				"creation order is non-decreasing")
			assert.Greater(t, list[i].ID, list[i-1].ID)
		}
	}
}

func TestDeletePostCascade(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db, nil)
	likes := NewLikeService(db, nil, nil)
	follows := NewFollowService(db)
	author := seedUser(t, db, "ada")
	other := seedUser(t, db, "grace")
	post := seedPost(t, db, author, "doomed")

	_, err := likes.Toggle(ctxb(), other.ID, post.ID)
	require.NoError(t, err)
	_, err = posts.CreateComment(ctxb(), other.ID, post.ID, "so long")
	require.NoError(t, err)
	// a follow notification is not post-linked and must survive the cascade
	_, err = follows.Toggle(ctxb(), other.ID, author.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, notificationCount(t, db, author.ID))

	require.NoError(t, posts.DeletePost(ctxb(), author.ID, post.ID))

	var nLikes, nComments, nNotifs int64
	require.NoError(t, db.Model(&model.Like{}).Where("post_id = ?", post.ID).Count(&nLikes).Error)
	require.NoError(t, db.Model(&model.Comment{}).Where("post_id = ?", post.ID).Count(&nComments).Error)
	require.NoError(t, db.Model(&model.Notification{}).Where("post_id = ?", post.ID).Count(&nNotifs).Error)
	assert.Zero(t, nLikes)
	assert.Zero(t, nComments)
	assert.Zero(t, nNotifs)

	err = db.First(&model.Post{}, post.ID).Error
	require.Error(t, err)

	assert.EqualValues(t, 1, notificationCount(t, db, author.ID),
		"the follow notification is untouched")
}

func TestDeletePostAuthorOnly(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db, nil)
	author := seedUser(t, db, "ada")
	intruder := seedUser(t, db, "mallory")
	post := seedPost(t, db, author, "mine")

	err := svc.DeletePost(ctxb(), intruder.ID, post.ID)
	require.ErrorIs(t, err, pkg.ErrUnauthorized)
	require.NoError(t, db.First(&model.Post{}, post.ID).Error, "post is untouched")

	err = svc.DeletePost(ctxb(), author.ID, 9999)
	require.ErrorIs(t, err, pkg.ErrNotFound)

	err = svc.DeletePost(ctxb(), 0, post.ID)
	require.ErrorIs(t, err, pkg.ErrUnauthenticated)
}

func TestMutationsWriteOutboxRows(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostService(db, nil)
	likes := NewLikeService(db, nil, nil)
	author := seedUser(t, db, "ada")
	liker := seedUser(t, db, "grace")

	post, err := posts.CreatePost(ctxb(), author.ID, "hello", "")
	require.NoError(t, err)
	_, err = likes.Toggle(ctxb(), liker.ID, post.ID)
	require.NoError(t, err)
	_, err = likes.Toggle(ctxb(), liker.ID, post.ID)
	require.NoError(t, err)

	var events []model.EngagementOutbox
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 3)
	assert.Equal(t, "post", events[0].EventType)
	assert.Equal(t, "like", events[1].EventType)
	assert.Equal(t, "unlike", events[2].EventType)
	for _, ev := range events {
		assert.Contains(t, ev.Payload, "event_id")
		assert.EqualValues(t, 0, ev.Status, "rows start pending")
	}
}
