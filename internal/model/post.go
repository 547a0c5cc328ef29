package model

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_time"`
	Content   string    `gorm:"type:text;not null"`
	ImageURL  string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"index:idx_author_time"`
	UpdatedAt time.Time

	Author   User      `gorm:"foreignKey:AuthorID"`
	Comments []Comment `gorm:"foreignKey:PostID"`
	Likes    []Like    `gorm:"foreignKey:PostID"`
}
