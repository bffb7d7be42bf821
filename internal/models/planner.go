package models

import "time"

type AssignmentStatus string

const (
	AssignmentStatusPending    AssignmentStatus = "PENDING"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusDone       AssignmentStatus = "DONE"
)

// User carries only the notification-relevant preference columns. Identity
// and credentials are owned by the CRUD services.
type User struct {
	ID                   int64  `json:"id" db:"id"`
	Email                string `json:"email" db:"email"`
	Name                 string `json:"name" db:"name"`
	NotifyEmail          bool   `json:"notify_email" db:"notify_email"`
	NotifyInApp          bool   `json:"notify_in_app" db:"notify_in_app"`
	SmartReminders       bool   `json:"smart_reminders_enabled" db:"smart_reminders_enabled"`
	SmartReminderMinDays int    `json:"smart_reminder_min_days" db:"smart_reminder_min_days"`
}

type Exam struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"user_id" db:"user_id"`
	CourseID        *int64    `json:"course_id,omitempty" db:"course_id"`
	CourseName      string    `json:"course_name,omitempty" db:"course_name"`
	Title           string    `json:"title" db:"title"`
	ExamDate        time.Time `json:"exam_date" db:"exam_date"`
	ReminderOffsets []int64   `json:"reminder_offsets" db:"reminder_offsets"`
}

type Assignment struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"user_id" db:"user_id"`
	CourseID   *int64           `json:"course_id,omitempty" db:"course_id"`
	CourseName string           `json:"course_name,omitempty" db:"course_name"`
	Title      string           `json:"title" db:"title"`
	DueDate    time.Time        `json:"due_date" db:"due_date"`
	Status     AssignmentStatus `json:"status" db:"status"`
}

type Milestone struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"user_id" db:"user_id"`
	ProjectTitle string     `json:"project_title" db:"project_title"`
	Title        string     `json:"title" db:"title"`
	DueDate      *time.Time `json:"due_date,omitempty" db:"due_date"`
	Completed    bool       `json:"completed" db:"completed"`
}

type StudyGoal struct {
	ID            int64  `json:"id" db:"id"`
	UserID        int64  `json:"user_id" db:"user_id"`
	CourseID      int64  `json:"course_id" db:"course_id"`
	CourseName    string `json:"course_name" db:"course_name"`
	WeeklyMinutes int    `json:"weekly_minutes" db:"weekly_minutes"`
	Active        bool   `json:"active" db:"active"`
}

// StudyStats is the per-course aggregate the smart-study heuristic works on.
type StudyStats struct {
	MinutesThisWeek int
	LastSessionEnd  *time.Time
}
