package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smartStudyUser(minDays int) *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]models.User{7: {
		ID:                   7,
		Email:                "ana@example.com",
		NotifyEmail:          true,
		NotifyInApp:          true,
		SmartReminders:       true,
		SmartReminderMinDays: minDays,
	}}}
}

func TestSmartStudyNearExamWithStudyGap(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	courseID := int64(3)
	exams := &fakeExamRepo{exams: []models.Exam{{
		ID:         5,
		UserID:     7,
		CourseID:   &courseID,
		CourseName: "Física",
		Title:      "P2",
		ExamDate:   now.Add(48 * time.Hour),
	}}}
	lastSession := now.Add(-6 * 24 * time.Hour)
	sessions := &fakeStudySessionRepo{stats: map[int64]map[int64]models.StudyStats{
		7: {courseID: {MinutesThisWeek: 600, LastSessionEnd: &lastSession}},
	}}
	enq := &captureEnqueuer{}
	p := NewSmartStudyProcessor(smartStudyUser(10), exams, sessions, enq, NewDailyGate(9, 0), zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), now))

	// Ten hours of study this week and a ten-day personal threshold keep
	// the other clauses quiet; the six-day gap before an exam in two days
	// still fires.
	require.Len(t, enq.jobs, 1)
	job := enq.jobs[0]
	assert.Equal(t, "smart-study:7:5:2026-03-11", job.EventKey)
	assert.Equal(t, models.NotificationCategorySmartStudy, job.Category)
	assert.Contains(t, job.Message, "não estuda")
	assert.Contains(t, job.Message, "P2 (Física)")
}

func TestSmartStudyNeverStudiedCourse(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	courseID := int64(3)
	exams := &fakeExamRepo{exams: []models.Exam{{
		ID:       5,
		UserID:   7,
		CourseID: &courseID,
		Title:    "P2",
		ExamDate: now.Add(7 * 24 * time.Hour),
	}}}
	sessions := &fakeStudySessionRepo{}
	enq := &captureEnqueuer{}
	p := NewSmartStudyProcessor(smartStudyUser(2), exams, sessions, enq, NewDailyGate(9, 0), zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), now))

	require.Len(t, enq.jobs, 1)
	assert.Contains(t, enq.jobs[0].Message, "está chegando")
}

func TestSmartStudyRecentStudyStaysQuiet(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	courseID := int64(3)
	exams := &fakeExamRepo{exams: []models.Exam{{
		ID:       5,
		UserID:   7,
		CourseID: &courseID,
		Title:    "P2",
		ExamDate: now.Add(6 * 24 * time.Hour),
	}}}
	lastSession := now.Add(-12 * time.Hour)
	sessions := &fakeStudySessionRepo{stats: map[int64]map[int64]models.StudyStats{
		7: {courseID: {MinutesThisWeek: 300, LastSessionEnd: &lastSession}},
	}}
	enq := &captureEnqueuer{}
	p := NewSmartStudyProcessor(smartStudyUser(2), exams, sessions, enq, NewDailyGate(9, 0), zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), now))
	assert.Empty(t, enq.jobs)
}

func TestSmartStudyLowWeeklyHours(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	courseID := int64(3)
	exams := &fakeExamRepo{exams: []models.Exam{{
		ID:       5,
		UserID:   7,
		CourseID: &courseID,
		Title:    "P2",
		ExamDate: now.Add(5 * 24 * time.Hour),
	}}}
	// Studied this morning, so the gap clauses stay quiet, but only one
	// hour this whole week.
	lastSession := now.Add(-2 * time.Hour)
	sessions := &fakeStudySessionRepo{stats: map[int64]map[int64]models.StudyStats{
		7: {courseID: {MinutesThisWeek: 60, LastSessionEnd: &lastSession}},
	}}
	enq := &captureEnqueuer{}
	p := NewSmartStudyProcessor(smartStudyUser(2), exams, sessions, enq, NewDailyGate(9, 0), zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), now))

	require.Len(t, enq.jobs, 1)
	assert.Contains(t, enq.jobs[0].Message, "menos de 2 horas")
}

func TestSmartStudyEveOfExamMessage(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	courseID := int64(3)
	exams := &fakeExamRepo{exams: []models.Exam{{
		ID:       5,
		UserID:   7,
		CourseID: &courseID,
		Title:    "P2",
		ExamDate: now.Add(30 * time.Hour),
	}}}
	sessions := &fakeStudySessionRepo{}
	enq := &captureEnqueuer{}
	p := NewSmartStudyProcessor(smartStudyUser(2), exams, sessions, enq, NewDailyGate(9, 0), zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), now))

	require.Len(t, enq.jobs, 1)
	assert.Contains(t, enq.jobs[0].Message, "amanhã")
}
