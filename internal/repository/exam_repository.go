package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/plannerhub/planner-api/internal/models"
)

type ExamRepository interface {
	// ListDueBetween pages exams whose date falls inside [from, to),
	// ordered by id, starting after the given cursor.
	ListDueBetween(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Exam, error)
	// ListAwaitingReview pages exams dated inside [from, to) that have no
	// retrospective submission or dismissal yet.
	ListAwaitingReview(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Exam, error)
	// ListUpcomingForUser returns a user's exams dated inside [from, to).
	ListUpcomingForUser(ctx context.Context, userID int64, from, to time.Time) ([]models.Exam, error)
}

type examRepository struct {
	db *sql.DB
}

func NewExamRepository(db *sql.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) ListDueBetween(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Exam, error) {
	const query = `
		SELECT e.id, e.user_id, e.course_id, COALESCE(c.name, ''), e.title, e.exam_date, e.reminder_offsets
		FROM planner.exams e
		LEFT JOIN planner.courses c ON c.id = e.course_id
		WHERE e.exam_date >= $1 AND e.exam_date < $2 AND e.id > $3
		ORDER BY e.id
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, from, to, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

func (r *examRepository) ListAwaitingReview(ctx context.Context, from, to time.Time, afterID int64, limit int) ([]models.Exam, error) {
	const query = `
		SELECT e.id, e.user_id, e.course_id, COALESCE(c.name, ''), e.title, e.exam_date, e.reminder_offsets
		FROM planner.exams e
		LEFT JOIN planner.courses c ON c.id = e.course_id
		WHERE e.exam_date >= $1 AND e.exam_date < $2 AND e.id > $3
			AND NOT EXISTS (SELECT 1 FROM planner.exam_reviews r WHERE r.exam_id = e.id)
		ORDER BY e.id
		LIMIT $4
	`
	rows, err := r.db.QueryContext(ctx, query, from, to, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

func (r *examRepository) ListUpcomingForUser(ctx context.Context, userID int64, from, to time.Time) ([]models.Exam, error) {
	const query = `
		SELECT e.id, e.user_id, e.course_id, COALESCE(c.name, ''), e.title, e.exam_date, e.reminder_offsets
		FROM planner.exams e
		LEFT JOIN planner.courses c ON c.id = e.course_id
		WHERE e.user_id = $1 AND e.exam_date >= $2 AND e.exam_date < $3
		ORDER BY e.exam_date
	`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExams(rows)
}

func scanExams(rows *sql.Rows) ([]models.Exam, error) {
	var exams []models.Exam
	for rows.Next() {
		var (
			exam     models.Exam
			courseID sql.NullInt64
			offsets  pq.Int64Array
		)
		if err := rows.Scan(&exam.ID, &exam.UserID, &courseID, &exam.CourseName, &exam.Title, &exam.ExamDate, &offsets); err != nil {
			return nil, err
		}
		if courseID.Valid {
			id := courseID.Int64
			exam.CourseID = &id
		}
		exam.ReminderOffsets = []int64(offsets)
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return exams, nil
}
