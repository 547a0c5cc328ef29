package mysql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertOutbox records an engagement event in the same transaction as the
// mutation it describes. The event id lets downstream consumers deduplicate
// redelivered messages.
func insertOutbox(tx *gorm.DB, event string, actorID, subjectID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_id":   uuid.NewString(),
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"event_type": event,
		"actor":      actorID,
		"subject":    subjectID,
	})
	ob := &model.EngagementOutbox{
		EventType: event,
		ActorID:   actorID,
		SubjectID: subjectID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// List returns pending rows oldest first.
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.EngagementOutbox, error) {
	var list []model.EngagementOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate marks a row failed and bumps its retry counter.
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate marks a row delivered.
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EngagementOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
