package notification

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/plannerhub/planner-api/internal/models"
	"github.com/plannerhub/planner-api/internal/repository"
	"github.com/rs/zerolog"
)

// freshnessWindow separates a first-time insert from a redelivery: only a
// record younger than this may also go out by email. Keeps a broker retry
// after a transient failure from mailing the user twice.
const freshnessWindow = 10 * time.Second

type Service interface {
	// Record persists the notification idempotently and sends the optional
	// email exactly once per event key.
	Record(ctx context.Context, job models.NotificationJob) (models.Notification, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID int64, notificationID string) (models.Notification, error)
}

type service struct {
	repo   repository.NotificationRepository
	mailer Mailer
	clock  clock.Clock
	logger zerolog.Logger
}

// NewService builds the delivery service. mailer may be nil when email is
// not configured; in-app recording still works.
func NewService(repo repository.NotificationRepository, mailer Mailer, clk clock.Clock, logger zerolog.Logger) Service {
	return &service{
		repo:   repo,
		mailer: mailer,
		clock:  clk,
		logger: logger.With().Str("component", "notification_service").Logger(),
	}
}

func (s *service) Record(ctx context.Context, job models.NotificationJob) (models.Notification, error) {
	params := repository.UpsertNotificationParams{
		UserID:   job.UserID,
		EventKey: job.EventKey,
		Category: job.Category,
		Title:    job.Title,
		Message:  job.Message,
	}
	if !job.ScheduledFor.IsZero() {
		params.ScheduledFor = sql.NullTime{Time: job.ScheduledFor, Valid: true}
	}

	notif, err := s.repo.Upsert(ctx, params)
	if err != nil {
		s.logger.Error().Err(err).Str("event_key", job.EventKey).Msg("failed to persist notification")
		return models.Notification{}, err
	}

	justCreated := s.clock.Now().Sub(notif.CreatedAt) < freshnessWindow
	if !justCreated {
		s.logger.Debug().Str("event_key", job.EventKey).Msg("redelivery of existing notification, email suppressed")
		return notif, nil
	}

	if job.NotifyEmail && s.mailer != nil {
		subject := fmt.Sprintf("[Planner] %s", job.Title)
		if err := s.mailer.Send(job.Email, subject, job.Message); err != nil {
			// Email is fire-and-forget: the in-app record exists, so the
			// job must not fail and be retried over a dead SMTP server.
			s.logger.Warn().Err(err).Str("event_key", job.EventKey).Msg("failed to send notification email")
		} else {
			s.logger.Info().Str("event_key", job.EventKey).Str("to", job.Email).Msg("notification email sent")
		}
	}

	return notif, nil
}

func (s *service) ListRecent(ctx context.Context, userID int64, limit int) ([]models.Notification, error) {
	return s.repo.ListRecent(ctx, userID, limit)
}

func (s *service) MarkRead(ctx context.Context, userID int64, notificationID string) (models.Notification, error) {
	return s.repo.MarkRead(ctx, userID, notificationID)
}
