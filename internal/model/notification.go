package model

import "time"

type NotificationKind string

const (
	NotificationLike    NotificationKind = "LIKE"
	NotificationComment NotificationKind = "COMMENT"
	NotificationFollow  NotificationKind = "FOLLOW"
)

// Notification is only ever written as a side effect of an engagement
// mutation, in the same transaction as the primary write. Recipient and
// actor are never the same user.
type Notification struct {
	ID          uint64           `gorm:"primaryKey"`
	RecipientID uint64           `gorm:"not null;index:idx_recipient_time"`
	ActorID     uint64           `gorm:"not null;index"`
	Kind        NotificationKind `gorm:"size:16;not null"`
	PostID      *uint64          `gorm:"index"`
	CommentID   *uint64          `gorm:"index"`
	IsRead      bool             `gorm:"not null;default:false;index"`
	CreatedAt   time.Time        `gorm:"index:idx_recipient_time"`

	Actor   User     `gorm:"foreignKey:ActorID"`
	Post    *Post    `gorm:"foreignKey:PostID"`
	Comment *Comment `gorm:"foreignKey:CommentID"`
}
