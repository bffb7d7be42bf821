package reminder

import (
	"context"
	"database/sql"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
)

// captureEnqueuer records every job instead of talking to the broker.
type captureEnqueuer struct {
	keys []string
	jobs []models.NotificationJob
}

func (c *captureEnqueuer) Enqueue(_ context.Context, key string, job models.NotificationJob) error {
	c.keys = append(c.keys, key)
	c.jobs = append(c.jobs, job)
	return nil
}

type fakeUserRepo struct {
	users map[int64]models.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) ListSmartReminderUsers(_ context.Context, afterID int64, limit int) ([]models.User, error) {
	var out []models.User
	for id := afterID + 1; int64(len(out)) < int64(limit) && id <= 1000; id++ {
		user, ok := f.users[id]
		if !ok {
			continue
		}
		if user.NotifyInApp && user.SmartReminders {
			out = append(out, user)
		}
	}
	return out, nil
}

type fakeExamRepo struct {
	exams          []models.Exam
	awaitingReview []models.Exam
}

func (f *fakeExamRepo) ListDueBetween(_ context.Context, from, to time.Time, afterID int64, limit int) ([]models.Exam, error) {
	var out []models.Exam
	for _, exam := range f.exams {
		if exam.ID <= afterID || len(out) >= limit {
			continue
		}
		if !exam.ExamDate.Before(from) && exam.ExamDate.Before(to) {
			out = append(out, exam)
		}
	}
	return out, nil
}

func (f *fakeExamRepo) ListAwaitingReview(_ context.Context, from, to time.Time, afterID int64, limit int) ([]models.Exam, error) {
	var out []models.Exam
	for _, exam := range f.awaitingReview {
		if exam.ID <= afterID || len(out) >= limit {
			continue
		}
		if !exam.ExamDate.Before(from) && exam.ExamDate.Before(to) {
			out = append(out, exam)
		}
	}
	return out, nil
}

func (f *fakeExamRepo) ListUpcomingForUser(_ context.Context, userID int64, from, to time.Time) ([]models.Exam, error) {
	var out []models.Exam
	for _, exam := range f.exams {
		if exam.UserID != userID {
			continue
		}
		if !exam.ExamDate.Before(from) && exam.ExamDate.Before(to) {
			out = append(out, exam)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	assignments []models.Assignment
}

func (f *fakeAssignmentRepo) ListOpenDueBetween(_ context.Context, from, to time.Time, afterID int64, limit int) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range f.assignments {
		if a.ID <= afterID || len(out) >= limit {
			continue
		}
		if a.Status == models.AssignmentStatusDone {
			continue
		}
		if !a.DueDate.Before(from) && a.DueDate.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeMilestoneRepo struct {
	milestones []models.Milestone
}

func (f *fakeMilestoneRepo) ListPendingDueBetween(_ context.Context, from, to time.Time, afterID int64, limit int) ([]models.Milestone, error) {
	var out []models.Milestone
	for _, m := range f.milestones {
		if m.ID <= afterID || len(out) >= limit {
			continue
		}
		if m.DueDate == nil || m.Completed {
			continue
		}
		if !m.DueDate.Before(from) && m.DueDate.Before(to) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeStudyGoalRepo struct {
	goals []models.StudyGoal
}

func (f *fakeStudyGoalRepo) ListActive(_ context.Context, afterID int64, limit int) ([]models.StudyGoal, error) {
	var out []models.StudyGoal
	for _, g := range f.goals {
		if g.ID <= afterID || len(out) >= limit {
			continue
		}
		if g.Active {
			out = append(out, g)
		}
	}
	return out, nil
}

type fakeStudySessionRepo struct {
	// minutes per (userID, courseID) within the queried window
	minutes map[[2]int64]int
	// stats per userID
	stats map[int64]map[int64]models.StudyStats
}

func (f *fakeStudySessionRepo) MinutesSince(_ context.Context, userID, courseID int64, _ time.Time) (int, error) {
	return f.minutes[[2]int64{userID, courseID}], nil
}

func (f *fakeStudySessionRepo) StatsSince(_ context.Context, userID int64, _ time.Time) (map[int64]models.StudyStats, error) {
	stats := f.stats[userID]
	if stats == nil {
		stats = map[int64]models.StudyStats{}
	}
	return stats, nil
}

func (f *fakeStudySessionRepo) TotalMinutesSince(_ context.Context, userID int64, _ time.Time) (int, error) {
	total := 0
	for _, s := range f.stats[userID] {
		total += s.MinutesThisWeek
	}
	return total, nil
}

func singleUserRepo(id int64, email string, notifyEmail bool) *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]models.User{
		id: {ID: id, Email: email, NotifyEmail: notifyEmail, NotifyInApp: true},
	}}
}
