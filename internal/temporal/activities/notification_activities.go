package activities

import (
	"context"

	"github.com/pkg/errors"
	"github.com/plannerhub/planner-api/internal/models"
	"github.com/plannerhub/planner-api/internal/notification"
	"go.temporal.io/sdk/activity"
)

type Activities struct {
	Deliveries notification.Service
}

// DeliverNotification records the notification and sends the optional
// email. Failures surface to the workflow's retry policy; the recording
// step is an upsert, so re-running the activity is safe.
func (a *Activities) DeliverNotification(ctx context.Context, job models.NotificationJob) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Recording notification", "EventKey", job.EventKey, "UserID", job.UserID)

	notif, err := a.Deliveries.Record(ctx, job)
	if err != nil {
		logger.Error("Failed to record notification", "EventKey", job.EventKey, "error", err)
		return errors.Wrapf(err, "record notification %s", job.EventKey)
	}

	logger.Info("Notification recorded", "EventKey", job.EventKey, "NotificationID", notif.ID)
	return nil
}
