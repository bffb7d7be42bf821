package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/plannerhub/planner-api/internal/models"
)

type NotificationRepository interface {
	// Upsert inserts a notification keyed by event key. If a row with the
	// same key already exists it is returned unchanged, so redelivery of a
	// job is a no-op write.
	Upsert(ctx context.Context, params UpsertNotificationParams) (models.Notification, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID int64, notificationID string) (models.Notification, error)
}

type UpsertNotificationParams struct {
	UserID       int64
	EventKey     string
	Category     models.NotificationCategory
	Title        string
	Message      string
	ScheduledFor sql.NullTime
}

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Upsert(ctx context.Context, params UpsertNotificationParams) (models.Notification, error) {
	// The conflict branch touches nothing but still RETURNs the existing
	// row, which keeps its original created_at for the freshness check.
	const query = `
		INSERT INTO planner.notifications (user_id, event_key, category, title, message, scheduled_for)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_key) DO UPDATE SET event_key = excluded.event_key
		RETURNING id, user_id, event_key, category, title, message, scheduled_for, created_at, read_at
	`
	row := r.db.QueryRowContext(ctx, query,
		params.UserID, strings.TrimSpace(params.EventKey), params.Category,
		params.Title, params.Message, params.ScheduledFor,
	)
	return scanNotification(row)
}

func (r *notificationRepository) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	const query = `
		SELECT id, user_id, event_key, category, title, message, scheduled_for, created_at, read_at
		FROM planner.notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		notif, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, notif)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, notificationID string) (models.Notification, error) {
	const query = `
		UPDATE planner.notifications
		SET read_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, event_key, category, title, message, scheduled_for, created_at, read_at
	`
	row := r.db.QueryRowContext(ctx, query, strings.TrimSpace(notificationID), userID)
	return scanNotification(row)
}

func scanNotification(scanner interface {
	Scan(dest ...interface{}) error
}) (models.Notification, error) {
	var (
		notif        models.Notification
		scheduledFor sql.NullTime
		readAt       sql.NullTime
	)

	if err := scanner.Scan(
		&notif.ID,
		&notif.UserID,
		&notif.EventKey,
		&notif.Category,
		&notif.Title,
		&notif.Message,
		&scheduledFor,
		&notif.CreatedAt,
		&readAt,
	); err != nil {
		return models.Notification{}, err
	}

	if scheduledFor.Valid {
		notif.ScheduledFor = scheduledFor.Time
	}
	if readAt.Valid {
		t := readAt.Time
		notif.ReadAt = &t
	}

	return notif, nil
}
