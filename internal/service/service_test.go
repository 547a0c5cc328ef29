package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. TranslateError matches the
// production config so uniqueness races classify the same way as on MySQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.Follow{},
		&model.Notification{},
		&model.EngagementOutbox{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, handle string) *model.User {
	t.Helper()
	u := &model.User{
		ExternalID: "ext-" + handle,
		Handle:     handle,
		Name:       handle,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPost(t *testing.T, db *gorm.DB, author *model.User, content string) *model.Post {
	t.Helper()
	p := &model.Post{AuthorID: author.ID, Content: content}
	require.NoError(t, db.Create(p).Error)
	return p
}

func notificationCount(t *testing.T, db *gorm.DB, recipientID uint64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.Notification{}).Where("recipient_id = ?", recipientID).Count(&n).Error)
	return n
}

func ctxb() context.Context { return context.Background() }
