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

var milestoneOffsets = []int64{1440, 360}

type MilestoneProcessor struct {
	milestones repository.MilestoneRepository
	users      repository.UserRepository
	enqueuer   Enqueuer
	horizon    time.Duration
	pageSize   int
	logger     zerolog.Logger
}

func NewMilestoneProcessor(milestones repository.MilestoneRepository, users repository.UserRepository, enqueuer Enqueuer, horizon time.Duration, logger zerolog.Logger) *MilestoneProcessor {
	return &MilestoneProcessor{
		milestones: milestones,
		users:      users,
		enqueuer:   enqueuer,
		horizon:    horizon,
		pageSize:   DefaultPageSize,
		logger:     logger.With().Str("processor", "milestone").Logger(),
	}
}

func (p *MilestoneProcessor) Name() string { return "milestone" }

func (p *MilestoneProcessor) Run(ctx context.Context, now time.Time) error {
	loader := newUserLoader(p.users)

	var cursor int64
	for {
		milestones, err := p.milestones.ListPendingDueBetween(ctx, now, now.Add(p.horizon), cursor, p.pageSize)
		if err != nil {
			return errors.Wrap(err, "list pending milestones")
		}

		for _, milestone := range milestones {
			if milestone.DueDate == nil || milestone.Completed {
				continue
			}
			for _, offset := range milestoneOffsets {
				remindAt := milestone.DueDate.Add(-time.Duration(offset) * time.Minute)
				if !ShouldTrigger(remindAt, now) {
					continue
				}

				user, err := loader.get(ctx, milestone.UserID)
				if err != nil {
					return errors.Wrap(err, "milestone reminder")
				}

				job := models.NotificationJob{
					EventKey:     MilestoneKey(milestone.ID, offset),
					UserID:       milestone.UserID,
					Category:     models.NotificationCategoryMilestone,
					Title:        "Marco do projeto se aproximando",
					Message:      milestoneMessage(milestone, offset),
					ScheduledFor: remindAt,
					Email:        user.Email,
					NotifyEmail:  user.NotifyEmail,
				}
				if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
					return errors.Wrapf(err, "enqueue milestone reminder %s", job.EventKey)
				}
			}
		}

		if len(milestones) < p.pageSize {
			return nil
		}
		cursor = milestones[len(milestones)-1].ID
	}
}

func milestoneMessage(milestone models.Milestone, offsetMinutes int64) string {
	subject := milestone.Title
	if milestone.ProjectTitle != "" {
		subject = fmt.Sprintf("%s (%s)", milestone.Title, milestone.ProjectTitle)
	}
	return fmt.Sprintf("O marco %s vence em %s.", subject, OffsetLabel(offsetMinutes))
}
