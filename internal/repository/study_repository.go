package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
)

type StudyGoalRepository interface {
	// ListActive pages active weekly goals ordered by id after the cursor.
	ListActive(ctx context.Context, afterID int64, limit int) ([]models.StudyGoal, error)
}

type StudySessionRepository interface {
	// MinutesSince sums a user's study minutes for one course since the
	// given instant.
	MinutesSince(ctx context.Context, userID, courseID int64, since time.Time) (int, error)
	// StatsSince returns per-course minutes since the given instant plus
	// the most recent session end per course, for one user.
	StatsSince(ctx context.Context, userID int64, since time.Time) (map[int64]models.StudyStats, error)
	// TotalMinutesSince sums a user's study minutes across all courses.
	TotalMinutesSince(ctx context.Context, userID int64, since time.Time) (int, error)
}

type studyGoalRepository struct {
	db *sql.DB
}

func NewStudyGoalRepository(db *sql.DB) StudyGoalRepository {
	return &studyGoalRepository{db: db}
}

func (r *studyGoalRepository) ListActive(ctx context.Context, afterID int64, limit int) ([]models.StudyGoal, error) {
	const query = `
		SELECT g.id, g.user_id, g.course_id, COALESCE(c.name, ''), g.weekly_minutes, g.active
		FROM planner.study_goals g
		LEFT JOIN planner.courses c ON c.id = g.course_id
		WHERE g.active = TRUE AND g.id > $1
		ORDER BY g.id
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.StudyGoal
	for rows.Next() {
		var g models.StudyGoal
		if err := rows.Scan(&g.ID, &g.UserID, &g.CourseID, &g.CourseName, &g.WeeklyMinutes, &g.Active); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return goals, nil
}

type studySessionRepository struct {
	db *sql.DB
}

func NewStudySessionRepository(db *sql.DB) StudySessionRepository {
	return &studySessionRepository{db: db}
}

func (r *studySessionRepository) MinutesSince(ctx context.Context, userID, courseID int64, since time.Time) (int, error) {
	const query = `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM planner.study_sessions
		WHERE user_id = $1 AND course_id = $2 AND started_at >= $3
	`
	var minutes int
	err := r.db.QueryRowContext(ctx, query, userID, courseID, since).Scan(&minutes)
	return minutes, err
}

func (r *studySessionRepository) StatsSince(ctx context.Context, userID int64, since time.Time) (map[int64]models.StudyStats, error) {
	// LastSessionEnd is taken over the whole history, not just the window,
	// so "days since studied" stays correct across week boundaries.
	const query = `
		SELECT course_id,
			COALESCE(SUM(duration_minutes) FILTER (WHERE started_at >= $2), 0),
			MAX(ended_at)
		FROM planner.study_sessions
		WHERE user_id = $1
		GROUP BY course_id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[int64]models.StudyStats)
	for rows.Next() {
		var (
			courseID int64
			minutes  int
			lastEnd  sql.NullTime
		)
		if err := rows.Scan(&courseID, &minutes, &lastEnd); err != nil {
			return nil, err
		}
		s := models.StudyStats{MinutesThisWeek: minutes}
		if lastEnd.Valid {
			t := lastEnd.Time
			s.LastSessionEnd = &t
		}
		stats[courseID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *studySessionRepository) TotalMinutesSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	const query = `
		SELECT COALESCE(SUM(duration_minutes), 0)
		FROM planner.study_sessions
		WHERE user_id = $1 AND started_at >= $2
	`
	var minutes int
	err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&minutes)
	return minutes, err
}
