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

// RetrospectiveProcessor prompts for a post-exam retrospective once per
// exam. Candidates are exams dated one to two days in the past without a
// submitted or dismissed review; the key carries no time component, so a
// handled exam is never prompted again.
type RetrospectiveProcessor struct {
	exams    repository.ExamRepository
	users    repository.UserRepository
	enqueuer Enqueuer
	gate     *DailyGate
	pageSize int
	logger   zerolog.Logger
}

func NewRetrospectiveProcessor(exams repository.ExamRepository, users repository.UserRepository, enqueuer Enqueuer, gate *DailyGate, logger zerolog.Logger) *RetrospectiveProcessor {
	return &RetrospectiveProcessor{
		exams:    exams,
		users:    users,
		enqueuer: enqueuer,
		gate:     gate,
		pageSize: DefaultPageSize,
		logger:   logger.With().Str("processor", "retrospective").Logger(),
	}
}

func (p *RetrospectiveProcessor) Name() string { return "retrospective" }

func (p *RetrospectiveProcessor) Run(ctx context.Context, now time.Time) error {
	if !p.gate.ShouldRun(p.Name(), now) {
		return nil
	}

	loader := newUserLoader(p.users)
	from := now.Add(-48 * time.Hour)
	to := now.Add(-24 * time.Hour)

	var cursor int64
	for {
		exams, err := p.exams.ListAwaitingReview(ctx, from, to, cursor, p.pageSize)
		if err != nil {
			return errors.Wrap(err, "list exams awaiting review")
		}

		for _, exam := range exams {
			user, err := loader.get(ctx, exam.UserID)
			if err != nil {
				return errors.Wrap(err, "retrospective prompt")
			}

			subject := exam.Title
			if exam.CourseName != "" {
				subject = fmt.Sprintf("%s (%s)", exam.Title, exam.CourseName)
			}

			job := models.NotificationJob{
				EventKey:     ExamReviewKey(exam.ID),
				UserID:       exam.UserID,
				Category:     models.NotificationCategoryExamReview,
				Title:        "Como foi a prova?",
				Message:      fmt.Sprintf("Registre como foi a prova %s: o que funcionou e o que você faria diferente.", subject),
				ScheduledFor: now,
				Email:        user.Email,
				NotifyEmail:  user.NotifyEmail,
			}
			if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
				return errors.Wrapf(err, "enqueue retrospective prompt %s", job.EventKey)
			}
		}

		if len(exams) < p.pageSize {
			return nil
		}
		cursor = exams[len(exams)-1].ID
	}
}
