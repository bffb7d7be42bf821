package repository

import (
	"context"
	"database/sql"

	"github.com/plannerhub/planner-api/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (models.User, error)
	// ListSmartReminderUsers pages users who confirmed in-app notifications
	// and explicitly enabled smart study reminders.
	ListSmartReminderUsers(ctx context.Context, afterID int64, limit int) ([]models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, name, notify_email, notify_in_app, smart_reminders_enabled, smart_reminder_min_days`

func (r *userRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	query := `SELECT ` + userColumns + ` FROM planner.users WHERE id = $1`
	var u models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.Name, &u.NotifyEmail, &u.NotifyInApp, &u.SmartReminders, &u.SmartReminderMinDays,
	)
	return u, err
}

func (r *userRepository) ListSmartReminderUsers(ctx context.Context, afterID int64, limit int) ([]models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM planner.users
		WHERE notify_in_app = TRUE AND smart_reminders_enabled = TRUE AND id > $1
		ORDER BY id
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.NotifyEmail, &u.NotifyInApp, &u.SmartReminders, &u.SmartReminderMinDays); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
