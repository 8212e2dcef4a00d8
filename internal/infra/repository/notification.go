package repository

import (
	"context"
	"time"

	"shareit/internal/infra"
	"shareit/internal/infra/db"

	"github.com/doug-martin/goqu/v9"
)

const (
	tableNotificationJobs = "notification_jobs"

	JobStatusQueued = "queued"
)

// NotificationRepository writes outbox rows; a separate worker delivers them.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	query, args, err := db.Builder().
		Insert(tableNotificationJobs).
		Rows(goqu.Record{
			"kind":    kind,
			"topic":   topic,
			"payload": string(payload),
			"run_at":  runAt,
			"status":  JobStatusQueued,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return infra.WrapRepoErr("failed to build notification job insert", err, infra.KindQueryBuild)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
