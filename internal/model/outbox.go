package model

import "time"

// EngagementOutbox rows are written in the same transaction as the mutation
// they describe and drained to Kafka by the relayer.
type EngagementOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // like / unlike / follow / unfollow / comment / post / post_delete
	ActorID   uint64 `gorm:"not null"`
	SubjectID uint64 `gorm:"not null"` // post id or target user id, depending on event type
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EngagementOutbox) TableName() string { return "engagement_outbox" }
