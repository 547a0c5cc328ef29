package service

import (
	"context"
	"log"
	"time"

	"github.com/MuxN4/linkup/internal/model"
	"github.com/MuxN4/linkup/internal/pkg"
	"github.com/MuxN4/linkup/internal/repository/mysql"
	"gorm.io/gorm"
)

// Sender delivers one outbox row to the event bus.
type Sender func(ctx context.Context, ob *model.EngagementOutbox) error

// OutboxRelayer drains pending engagement events to the sender. Rows are
// written transactionally with the mutations they describe, so delivery is
// at-least-once; consumers deduplicate on the payload event id.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// KafkaSender publishes the row's payload keyed by actor id.
func KafkaSender(producer *pkg.EventProducer) Sender {
	return func(ctx context.Context, ob *model.EngagementOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.ActorID), []byte(ob.Payload))
	}
}

// LogSender is the fallback when no broker is configured.
func LogSender(ctx context.Context, ob *model.EngagementOutbox) error {
	log.Printf("OUTBOX SEND type=%s actor=%d subject=%d payload=%s", ob.EventType, ob.ActorID, ob.SubjectID, ob.Payload)
	return nil
}

// FollowCountReconciler periodically compares the denormalized
// follower/following counters against the follow table and corrects drift.
type FollowCountReconciler struct {
	repo      *mysql.FollowCountReconcilerRepo
	batchSize int
	interval  time.Duration
	lastID    uint64
}

func NewFollowCountReconciler(db *gorm.DB) *FollowCountReconciler {
	return &FollowCountReconciler{
		repo:      &mysql.FollowCountReconcilerRepo{DB: db},
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

func (r *FollowCountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *FollowCountReconciler) reconcileOnce(ctx context.Context) {
	users, next, err := r.repo.ReconcileList(ctx, r.batchSize, r.lastID)
	if err != nil {
		log.Printf("reconcile list err: %v", err)
		return
	}
	if len(users) == 0 {
		// end of table; restart the sweep next tick
		r.lastID = 0
		return
	}
	r.lastID = next

	for _, u := range users {
		realFollowing, err := r.repo.RealFollowings(ctx, u.ID)
		if err != nil {
			continue
		}
		realFollower, err := r.repo.RealFollowers(ctx, u.ID)
		if err != nil {
			continue
		}
		if realFollowing != u.FollowingCount {
			_ = r.repo.ReconcileFollowings(ctx, u.ID, realFollowing)
		}
		if realFollower != u.FollowerCount {
			_ = r.repo.ReconcileFollowers(ctx, u.ID, realFollower)
		}
	}
}
