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

const (
	// smartStudyHorizon is how far ahead exams are considered.
	smartStudyHorizon = 14 * 24 * time.Hour
	// neverStudiedDays is the sentinel when a course has no session at all.
	neverStudiedDays = 9999
	// lowWeeklyHours marks a week with too little total study time.
	lowWeeklyHours = 2.0
)

// SmartStudyProcessor nudges users who have an exam coming up but have not
// been studying. Runs once per day, only for users who confirmed in-app
// notifications and enabled the feature. The trigger rule and its
// thresholds mirror product behavior and must not be tuned here.
type SmartStudyProcessor struct {
	users    repository.UserRepository
	exams    repository.ExamRepository
	sessions repository.StudySessionRepository
	enqueuer Enqueuer
	gate     *DailyGate
	pageSize int
	logger   zerolog.Logger
}

func NewSmartStudyProcessor(users repository.UserRepository, exams repository.ExamRepository, sessions repository.StudySessionRepository, enqueuer Enqueuer, gate *DailyGate, logger zerolog.Logger) *SmartStudyProcessor {
	return &SmartStudyProcessor{
		users:    users,
		exams:    exams,
		sessions: sessions,
		enqueuer: enqueuer,
		gate:     gate,
		pageSize: DefaultPageSize,
		logger:   logger.With().Str("processor", "smart-study").Logger(),
	}
}

func (p *SmartStudyProcessor) Name() string { return "smart-study" }

func (p *SmartStudyProcessor) Run(ctx context.Context, now time.Time) error {
	if !p.gate.ShouldRun(p.Name(), now) {
		return nil
	}

	var cursor int64
	for {
		users, err := p.users.ListSmartReminderUsers(ctx, cursor, p.pageSize)
		if err != nil {
			return errors.Wrap(err, "list smart reminder users")
		}

		for _, user := range users {
			if err := p.runForUser(ctx, user, now); err != nil {
				return err
			}
		}

		if len(users) < p.pageSize {
			return nil
		}
		cursor = users[len(users)-1].ID
	}
}

func (p *SmartStudyProcessor) runForUser(ctx context.Context, user models.User, now time.Time) error {
	exams, err := p.exams.ListUpcomingForUser(ctx, user.ID, now, now.Add(smartStudyHorizon))
	if err != nil {
		return errors.Wrapf(err, "upcoming exams for user %d", user.ID)
	}
	if len(exams) == 0 {
		return nil
	}

	stats, err := p.sessions.StatsSince(ctx, user.ID, startOfISOWeek(now))
	if err != nil {
		return errors.Wrapf(err, "study stats for user %d", user.ID)
	}

	totalMinutes := 0
	for _, s := range stats {
		totalMinutes += s.MinutesThisWeek
	}
	hoursThisWeek := float64(totalMinutes) / 60.0

	for _, exam := range exams {
		daysLeft := int(exam.ExamDate.Sub(now).Hours() / 24)
		daysSinceStudied := daysSince(lastSessionEnd(exam, stats), now)

		triggered := (daysLeft <= 7 && daysSinceStudied >= user.SmartReminderMinDays) ||
			(daysLeft <= 3 && daysSinceStudied >= 1) ||
			(daysLeft <= 5 && hoursThisWeek < lowWeeklyHours)
		if !triggered {
			continue
		}

		job := models.NotificationJob{
			EventKey:     SmartStudyKey(user.ID, exam.ID, now),
			UserID:       user.ID,
			Category:     models.NotificationCategorySmartStudy,
			Title:        "Hora de estudar",
			Message:      smartStudyMessage(exam, daysLeft, daysSinceStudied, hoursThisWeek),
			ScheduledFor: now,
			Email:        user.Email,
			NotifyEmail:  user.NotifyEmail,
		}
		if err := p.enqueuer.Enqueue(ctx, job.EventKey, job); err != nil {
			return errors.Wrapf(err, "enqueue smart study %s", job.EventKey)
		}
	}
	return nil
}

// lastSessionEnd picks the exam's course stats when available, otherwise
// the most recent session across all courses.
func lastSessionEnd(exam models.Exam, stats map[int64]models.StudyStats) *time.Time {
	if exam.CourseID != nil {
		return stats[*exam.CourseID].LastSessionEnd
	}
	var latest *time.Time
	for _, s := range stats {
		if s.LastSessionEnd == nil {
			continue
		}
		if latest == nil || s.LastSessionEnd.After(*latest) {
			latest = s.LastSessionEnd
		}
	}
	return latest
}

func daysSince(t *time.Time, now time.Time) int {
	if t == nil {
		return neverStudiedDays
	}
	return int(now.Sub(*t).Hours() / 24)
}

// smartStudyMessage picks one of four phrasings, most urgent first.
func smartStudyMessage(exam models.Exam, daysLeft, daysSinceStudied int, hoursThisWeek float64) string {
	subject := exam.Title
	if exam.CourseName != "" {
		subject = fmt.Sprintf("%s (%s)", exam.Title, exam.CourseName)
	}

	switch {
	case daysLeft <= 1:
		return fmt.Sprintf("A prova %s é amanhã! Reserve um tempo para a revisão final hoje.", subject)
	case daysLeft <= 3 && daysSinceStudied >= 1:
		return fmt.Sprintf("Faltam %d dia(s) para a prova %s e você não estuda para ela há %d dia(s). Hora de retomar!", daysLeft, subject, daysSinceStudied)
	case daysLeft <= 5 && hoursThisWeek < lowWeeklyHours:
		return fmt.Sprintf("A prova %s é em %d dia(s) e você estudou menos de 2 horas esta semana. Agende uma sessão de estudo.", subject, daysLeft)
	default:
		return fmt.Sprintf("A prova %s está chegando (%d dia(s)). Que tal revisar o conteúdo hoje?", subject, daysLeft)
	}
}
