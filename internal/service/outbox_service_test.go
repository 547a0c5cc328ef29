package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutboxRelayerDrain(t *testing.T) {
	db := newTestDB(t)
	likes := NewLikeService(db, nil, nil)
	follows := NewFollowService(db)
	ada := seedUser(t, db, "ada")
	grace := seedUser(t, db, "grace")
	post := seedPost(t, db, ada, "hello")
	_, err := likes.Toggle(ctxb(), grace.ID, post.ID)
	require.NoError(t, err)
	_, err = follows.Toggle(ctxb(), grace.ID, ada.ID)
	require.NoError(t, err)

	var sent []string
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.EngagementOutbox) error {
		if ob.EventType == "like" {
			sent = append(sent, ob.EventType)
			return nil
		}
		return errors.New("broker down")
	})
	relayer.drainOnce(ctxb())

	assert.Equal(t, []string{"like"}, sent)

	var rows []model.EngagementOutbox
	require.NoError(t, db.Order("id ASC").Find(&rows).Error)
	for _, r := range rows {
		if r.EventType == "like" {
			assert.EqualValues(t, 1, r.Status, "delivered rows are marked sent")
		} else {
			assert.EqualValues(t, 2, r.Status, "failed rows are marked for retry")
			assert.Equal(t, 1, r.Retry)
		}
	}
}

func TestFollowCountReconcilerFixesDrift(t *testing.T) {
	db := newTestDB(t)
	follows := NewFollowService(db)
	ada := seedUser(t, db, "ada")
	grace := seedUser(t, db, "grace")
	_, err := follows.Toggle(ctxb(), grace.ID, ada.ID)
	require.NoError(t, err)

	// inject drift into the denormalized counters
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", ada.ID).
		UpdateColumn("follower_count", 41).Error)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", grace.ID).
		UpdateColumn("following_count", 7).Error)

	reconciler := NewFollowCountReconciler(db)
	reconciler.reconcileOnce(ctxb())

	var adaRow, graceRow model.User
	require.NoError(t, db.First(&adaRow, ada.ID).Error)
	require.NoError(t, db.First(&graceRow, grace.ID).Error)
	assert.EqualValues(t, 1, adaRow.FollowerCount)
	assert.EqualValues(t, 1, graceRow.FollowingCount)
}
