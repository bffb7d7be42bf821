package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
)

type AssignmentRepository interface {
	// ListOpenDueBetween pages assignments due inside [from, to) that are
	// not in a terminal status, ordered by id after the cursor.
	ListOpenDueBetween(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Assignment, error)
}

type assignmentRepository struct {
	db *sql.DB
}

func NewAssignmentRepository(db *sql.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) ListOpenDueBetween(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Assignment, error) {
	const query = `
		SELECT a.id, a.user_id, a.course_id, COALESCE(c.name, ''), a.title, a.due_date, a.status
		FROM planner.assignments a
		LEFT JOIN planner.courses c ON c.id = a.course_id
		WHERE a.due_date >= $1 AND a.due_date < $2 AND a.status <> $3 AND a.id > $4
		ORDER BY a.id
		LIMIT $5
	`
	rows, err := r.db.QueryContext(ctx, query, from, to, models.AssignmentStatusDone, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var (
			a        models.Assignment
			courseID sql.NullInt64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &courseID, &a.CourseName, &a.Title, &a.DueDate, &a.Status); err != nil {
			return nil, err
		}
		if courseID.Valid {
			id := courseID.Int64
			a.CourseID = &id
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}
