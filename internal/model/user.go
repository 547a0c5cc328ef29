package model

import "time"

type User struct {
	ID             uint64 `gorm:"primaryKey"`
	ExternalID     string `gorm:"uniqueIndex;size:64;not null"`
	Handle         string `gorm:"uniqueIndex;size:32;not null"`
	Name           string `gorm:"size:64"`
	AvatarURL      string `gorm:"size:255"`
	Bio            string `gorm:"type:text"`
	FollowerCount  int64  `gorm:"not null;default:0"`
	FollowingCount int64  `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
