package model

import "time"

// Comment belongs to a post and cannot outlive it. Ordering within a post
// is (created_at ASC, id ASC); the auto-increment id breaks same-timestamp
// ties deterministically.
type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	PostID    uint64 `gorm:"not null;index"`
	AuthorID  uint64 `gorm:"not null;index"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Author User `gorm:"foreignKey:AuthorID"`
}
