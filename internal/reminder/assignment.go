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

// assignmentOffsets are fixed for every assignment: a day, six hours and
// one hour before the deadline.
var assignmentOffsets = []int64{1440, 360, 60}

type AssignmentProcessor struct {
	assignments repository.AssignmentRepository
	users       repository.UserRepository
	enqueuer    Enqueuer
	horizon     time.Duration
	pageSize    int
	logger      zerolog.Logger
}

func NewAssignmentProcessor(assignments repository.AssignmentRepository, users repository.UserRepository, enqueuer Enqueuer, horizon time.Duration, logger zerolog.Logger) *AssignmentProcessor {
	return &AssignmentProcessor{
		assignments: assignments,
		users:       users,
		enqueuer:    enqueuer,
		horizon:     horizon,
		pageSize:    DefaultPageSize,
		logger:      logger.With().Str("processor", "assignment").Logger(),
	}
}

func (p *AssignmentProcessor) Name() string { return "assignment" }

func (p *AssignmentProcessor) Run(ctx context.Context, now time.Time) error {
	loader := newUserLoader(p.users)

	var cursor int64
	for {
		assignments, err := p.assignments.ListOpenDueBetween(ctx, now, now.Add(p.horizon), cursor, p.pageSize)
		if err != nil {
			return errors.Wrap(err, "list open assignments")
		}

		for _, assignment := range assignments {
			if assignment.Status == models.AssignmentStatusDone {
				continue
			}
			for _, offset := range assignmentOffsets {
				remindAt := assignment.DueDate.Add(-time.Duration(offset) * time.Minute)
				if !ShouldTrigger(remindAt, now) {
					continue
				}

				user, err := loader.get(ctx, assignment.UserID)
				if err != nil {
					return errors.Wrap(err, "assignment reminder")
				}

				job := models.NotificationJob{
					EventKey:     AssignmentKey(assignment.ID, offset),
					UserID:       assignment.UserID,
					Category:     models.NotificationCategoryAssignment,
					Title:        "Tarefa com prazo chegando",
					Message:      assignmentMessage(assignment, offset),
					ScheduledFor: remindAt,
					Email:        user.Email,
					NotifyEmail:  user.NotifyEmail,
				}
				if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
					return errors.Wrapf(err, "enqueue assignment reminder %s", job.EventKey)
				}
			}
		}

		if len(assignments) < p.pageSize {
			return nil
		}
		cursor = assignments[len(assignments)-1].ID
	}
}

func assignmentMessage(assignment models.Assignment, offsetMinutes int64) string {
	subject := assignment.Title
	if assignment.CourseName != "" {
		subject = fmt.Sprintf("%s (%s)", assignment.Title, assignment.CourseName)
	}
	return fmt.Sprintf("A tarefa %s vence em %s.", subject, OffsetLabel(offsetMinutes))
}
