package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedCountsMatchEmbeddedCollections(t *testing.T) {
	db := newTestDB(t)
	feed := NewFeedService(db)
	posts := NewPostService(db, nil)
	likes := NewLikeService(db, nil, nil)
	ada := seedUser(t, db, "ada")
	grace := seedUser(t, db, "grace")

	first := seedPost(t, db, ada, "first")
	// force distinct timestamps so the desc ordering is observable
	require.NoError(t, db.Model(first).Update("created_at", time.Now().Add(-time.Minute)).Error)
	second := seedPost(t, db, ada, "second")

	_, err := likes.Toggle(ctxb(), grace.ID, first.ID)
	require.NoError(t, err)
	_, err = posts.CreateComment(ctxb(), grace.ID, first.ID, "hello ada")
	require.NoError(t, err)

	views, err := feed.ListPosts(ctxb(), grace.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, second.ID, views[0].ID, "newest post first")
	assert.Equal(t, first.ID, views[1].ID)

	v := views[1]
	assert.Equal(t, "ada", v.Author.Handle)
	assert.Equal(t, len(v.Comments), v.CommentCount)
	assert.Equal(t, len(v.LikeUserIDs), v.LikeCount)
	assert.Equal(t, 1, v.LikeCount)
	assert.Equal(t, 1, v.CommentCount)
	assert.True(t, v.LikedByMe)
	assert.Equal(t, []uint64{grace.ID}, v.LikeUserIDs)

	// anonymous viewer: same data, no like attribution
	anon, err := feed.ListPosts(ctxb(), 0)
	require.NoError(t, err)
	assert.False(t, anon[1].LikedByMe)
}

// TestEngagementScenario walks the end-to-end engagement story: sign-up,
// post, like, unlike, follow, unfollow.
func TestEngagementScenario(t *testing.T) {
	db := newTestDB(t)
	identity := NewIdentityService(db, nil)
	posts := NewPostService(db, nil)
	likes := NewLikeService(db, nil, nil)
	follows := NewFollowService(db)
	feed := NewFeedService(db)
	notifications := NewNotificationService(db)

	// new user authenticates; handle derives from the email prefix
	a, err := identity.ResolveOrCreate(ctxb(), identityClaims("ext-a", "alice@example.com", "Alice", ""))
	require.NoError(t, err)
	require.Equal(t, "alice", a.Handle)
	b := seedUser(t, db, "bob")

	// A posts "hello": feed shows one post, no engagement yet
	post, err := posts.CreatePost(ctxb(), a.ID, "hello", "")
	require.NoError(t, err)
	views, err := feed.ListPosts(ctxb(), b.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Zero(t, views[0].LikeCount)
	assert.Zero(t, views[0].CommentCount)

	// B likes it: one like, one LIKE notification for A from B
	_, err = likes.Toggle(ctxb(), b.ID, post.ID)
	require.NoError(t, err)
	views, err = feed.ListPosts(ctxb(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, views[0].LikeCount)
	assert.True(t, views[0].LikedByMe)

	got, err := notifications.List(ctxb(), a.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.EqualValues(t, "LIKE", got[0].Kind)
	assert.Equal(t, b.ID, got[0].Actor.ID)

	// B unlikes: count returns to zero, notification history stays
	_, err = likes.Toggle(ctxb(), b.ID, post.ID)
	require.NoError(t, err)
	views, err = feed.ListPosts(ctxb(), b.ID)
	require.NoError(t, err)
	assert.Zero(t, views[0].LikeCount)
	got, err = notifications.List(ctxb(), a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 1, "history is not retracted")

	// B follows A: edge exists, FOLLOW notification created
	following, err := follows.Toggle(ctxb(), b.ID, a.ID)
	require.NoError(t, err)
	assert.True(t, following)
	got, err = notifications.List(ctxb(), a.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.EqualValues(t, "FOLLOW", got[0].Kind, "newest first")

	// B re-invokes: the toggle unfollows, no duplicate notification
	following, err = follows.Toggle(ctxb(), b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, following)
	got, err = notifications.List(ctxb(), a.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
