package models

import (
	"time"
)

type NotificationCategory string

const (
	NotificationCategoryExam       NotificationCategory = "exam"
	NotificationCategoryAssignment NotificationCategory = "assignment"
	NotificationCategoryMilestone  NotificationCategory = "milestone"
	NotificationCategoryStudyGoal  NotificationCategory = "study_goal"
	NotificationCategorySmartStudy NotificationCategory = "smart_study"
	NotificationCategoryExamReview NotificationCategory = "exam_review"
)

// Notification is a persisted in-app notification. EventKey is unique:
// recording the same key twice leaves a single row untouched.
type Notification struct {
	ID           string               `json:"id" db:"id"`
	UserID       int64                `json:"user_id" db:"user_id"`
	EventKey     string               `json:"event_key" db:"event_key"`
	Category     NotificationCategory `json:"category" db:"category"`
	Title        string               `json:"title" db:"title"`
	Message      string               `json:"message" db:"message"`
	ScheduledFor time.Time            `json:"scheduled_for" db:"scheduled_for"`
	CreatedAt    time.Time            `json:"created_at" db:"created_at"`
	ReadAt       *time.Time           `json:"read_at,omitempty" db:"read_at"`
}

// NotificationJob is the payload enqueued onto the broker for one logical
// reminder. It carries everything the delivery worker needs so the worker
// never reads the planner tables.
type NotificationJob struct {
	EventKey     string               `json:"event_key"`
	UserID       int64                `json:"user_id"`
	Category     NotificationCategory `json:"category"`
	Title        string               `json:"title"`
	Message      string               `json:"message"`
	ScheduledFor time.Time            `json:"scheduled_for"`
	Email        string               `json:"email"`
	NotifyEmail  bool                 `json:"notify_email"`
}
