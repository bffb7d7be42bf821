package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
)

type MilestoneRepository interface {
	// ListPendingDueBetween pages incomplete milestones with a due date
	// inside [from, to), ordered by id after the cursor. Milestones without
	// a due date never show up here.
	ListPendingDueBetween(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Milestone, error)
}

type milestoneRepository struct {
	db *sql.DB
}

func NewMilestoneRepository(db *sql.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) ListPendingDueBetween(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Milestone, error) {
	const query = `
		SELECT id, user_id, project_title, title, due_date, completed
		FROM planner.milestones
		WHERE due_date IS NOT NULL AND due_date >= $1 AND due_date < $2
			AND completed = FALSE AND id > $3
		ORDER BY id
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, from, to, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []models.Milestone
	for rows.Next() {
		var (
			m       models.Milestone
			dueDate sql.NullTime
		)
		if err := rows.Scan(&m.ID, &m.UserID, &m.ProjectTitle, &m.Title, &dueDate, &m.Completed); err != nil {
			return nil, err
		}
		if dueDate.Valid {
			t := dueDate.Time
			m.DueDate = &t
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return milestones, nil
}
