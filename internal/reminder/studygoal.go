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

// Progress nudges go out on Wednesday and Friday when the week's completion
// is below this fraction of the goal.
const studyGoalNudgeThreshold = 0.4

// StudyGoalProcessor evaluates weekly study goals once per day. A reached
// goal produces a single "achieved" notification for the ISO week; a
// lagging goal produces a progress nudge on designated weekdays.
type StudyGoalProcessor struct {
	goals    repository.StudyGoalRepository
	sessions repository.StudySessionRepository
	users    repository.UserRepository
	enqueuer Enqueuer
	gate     *DailyGate
	pageSize int
	logger   zerolog.Logger
}

func NewStudyGoalProcessor(goals repository.StudyGoalRepository, sessions repository.StudySessionRepository, users repository.UserRepository, enqueuer Enqueuer, gate *DailyGate, logger zerolog.Logger) *StudyGoalProcessor {
	return &StudyGoalProcessor{
		goals:    goals,
		sessions: sessions,
		users:    users,
		enqueuer: enqueuer,
		gate:     gate,
		pageSize: DefaultPageSize,
		logger:   logger.With().Str("processor", "study-goal").Logger(),
	}
}

func (p *StudyGoalProcessor) Name() string { return "study-goal" }

func (p *StudyGoalProcessor) Run(ctx context.Context, now time.Time) error {
	if !p.gate.ShouldRun(p.Name(), now) {
		return nil
	}

	loader := newUserLoader(p.users)
	weekStart := startOfISOWeek(now)

	var cursor int64
	for {
		goals, err := p.goals.ListActive(ctx, cursor, p.pageSize)
		if err != nil {
			return errors.Wrap(err, "list active study goals")
		}

		for _, goal := range goals {
			minutes, err := p.sessions.MinutesSince(ctx, goal.UserID, goal.CourseID, weekStart)
			if err != nil {
				return errors.Wrapf(err, "weekly minutes for goal %d", goal.ID)
			}

			if minutes >= goal.WeeklyMinutes {
				if err := p.emitAchieved(ctx, loader, goal, minutes, now); err != nil {
					return err
				}
				continue
			}

			weekday := now.Weekday()
			if weekday != time.Wednesday && weekday != time.Friday {
				continue
			}
			if float64(minutes) >= studyGoalNudgeThreshold*float64(goal.WeeklyMinutes) {
				continue
			}
			if err := p.emitNudge(ctx, loader, goal, minutes, now); err != nil {
				return err
			}
		}

		if len(goals) < p.pageSize {
			return nil
		}
		cursor = goals[len(goals)-1].ID
	}
}

func (p *StudyGoalProcessor) emitAchieved(ctx context.Context, loader *userLoader, goal models.StudyGoal, minutes int, now time.Time) error {
	user, err := loader.get(ctx, goal.UserID)
	if err != nil {
		return errors.Wrap(err, "study goal achieved")
	}

	job := models.NotificationJob{
		EventKey:     StudyGoalAchievedKey(goal.UserID, goal.CourseID, now),
		UserID:       goal.UserID,
		Category:     models.NotificationCategoryStudyGoal,
		Title:        "Meta de estudo atingida!",
		Message:      fmt.Sprintf("Você estudou %d min de %s esta semana e bateu sua meta de %d min. Parabéns!", minutes, goal.CourseName, goal.WeeklyMinutes),
		ScheduledFor: now,
		Email:        user.Email,
		NotifyEmail:  user.NotifyEmail,
	}
	if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
		return errors.Wrapf(err, "enqueue study goal achieved %s", job.EventKey)
	}
	return nil
}

func (p *StudyGoalProcessor) emitNudge(ctx context.Context, loader *userLoader, goal models.StudyGoal, minutes int, now time.Time) error {
	user, err := loader.get(ctx, goal.UserID)
	if err != nil {
		return errors.Wrap(err, "study goal nudge")
	}

	job := models.NotificationJob{
		EventKey:     StudyGoalReminderKey(now.Weekday(), goal.UserID, goal.CourseID, now),
		UserID:       goal.UserID,
		Category:     models.NotificationCategoryStudyGoal,
		Title:        "Meta de estudo da semana",
		Message:      fmt.Sprintf("Você estudou %d min de %s esta semana; sua meta é %d min. Que tal uma sessão hoje?", minutes, goal.CourseName, goal.WeeklyMinutes),
		ScheduledFor: now,
		Email:        user.Email,
		NotifyEmail:  user.NotifyEmail,
	}
	if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
		return errors.Wrapf(err, "enqueue study goal nudge %s", job.EventKey)
	}
	return nil
}
