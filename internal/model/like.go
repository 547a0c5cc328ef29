package model

import "time"

// Like existence is the whole state: (user_id, post_id) is unique, presence
// means "liked". The unique index is the final arbiter for concurrent toggles.
type Like struct {
	ID        uint64 `gorm:"primaryKey"`
	UserID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_post"`
	PostID    uint64 `gorm:"not null;index;uniqueIndex:uk_user_post"`
	CreatedAt time.Time
}

func (Like) TableName() string {
	return "likes"
}
