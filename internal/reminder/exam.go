package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/plannerhub/planner-api/internal/models"
	"github.com/plannerhub/planner-api/internal/repository"
	"github.com/rs/zerolog"
)

// ExamProcessor scans upcoming exams and fires a reminder for each
// (exam, offset) pair whose instant falls inside the current tick window.
// Offsets come from the exam row itself.
type ExamProcessor struct {
	exams    repository.ExamRepository
	users    repository.UserRepository
	enqueuer Enqueuer
	horizon  time.Duration
	pageSize int
	logger   zerolog.Logger
}

func NewExamProcessor(exams repository.ExamRepository, users repository.UserRepository, enqueuer Enqueuer, horizon time.Duration, logger zerolog.Logger) *ExamProcessor {
	return &ExamProcessor{
		exams:    exams,
		users:    users,
		enqueuer: enqueuer,
		horizon:  horizon,
		pageSize: DefaultPageSize,
		logger:   logger.With().Str("processor", "exam").Logger(),
	}
}

func (p *ExamProcessor) Name() string { return "exam" }

func (p *ExamProcessor) Run(ctx context.Context, now time.Time) error {
	loader := newUserLoader(p.users)

	var cursor int64
	for {
		exams, err := p.exams.ListDueBetween(ctx, now, now.Add(p.horizon), cursor, p.pageSize)
		if err != nil {
			return errors.Wrap(err, "list upcoming exams")
		}

		for _, exam := range exams {
			for _, offset := range exam.ReminderOffsets {
				remindAt := exam.ExamDate.Add(-time.Duration(offset) * time.Minute)
				if !ShouldTrigger(remindAt, now) {
					continue
				}

				user, err := loader.get(ctx, exam.UserID)
				if err != nil {
					return errors.Wrap(err, "exam reminder")
				}

				job := models.NotificationJob{
					EventKey:     ExamKey(exam.ID, offset),
					UserID:       exam.UserID,
					Category:     models.NotificationCategoryExam,
					Title:        "Prova se aproximando",
					Message:      examMessage(exam, offset),
					ScheduledFor: remindAt,
					Email:        user.Email,
					NotifyEmail:  user.NotifyEmail,
				}
				if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
					return errors.Wrapf(err, "enqueue exam reminder %s", job.EventKey)
				}
			}
		}

		if len(exams) < p.pageSize {
			return nil
		}
		cursor = exams[len(exams)-1].ID
	}
}

func examMessage(exam models.Exam, offsetMinutes int64) string {
	subject := exam.Title
	if exam.CourseName != "" {
		subject = fmt.Sprintf("%s (%s)", exam.Title, exam.CourseName)
	}
	return fmt.Sprintf("Faltam %s para a prova %s.", OffsetLabel(offsetMinutes), subject)
}
