package model

import "time"

// Follow is unique on (follower_id, following_id); follower != following
// is enforced before any write reaches the store.
type Follow struct {
	ID          uint64 `gorm:"primaryKey"`
	FollowerID  uint64 `gorm:"not null;index:idx_follower_id;uniqueIndex:uk_follower_following"`
	FollowingID uint64 `gorm:"not null;index:idx_following_id;uniqueIndex:uk_follower_following"`
	CreatedAt   time.Time
}

func (Follow) TableName() string {
	return "follows"
}
