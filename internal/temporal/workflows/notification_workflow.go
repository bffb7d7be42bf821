package workflows

import (
	"github.com/plannerhub/planner-api/internal/models"
	plannertemporal "github.com/plannerhub/planner-api/internal/temporal"
	"github.com/plannerhub/planner-api/internal/temporal/activities"
	sdktemporal "go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// NotificationWorkflow delivers one reminder job. The workflow ID carries
// the dedup key, so a logical reminder has at most one active delivery at
// a time; the activity itself is idempotent, so broker-level retries after
// a crash cannot produce a duplicate notification or email.
func NotificationWorkflow(ctx workflow.Context, job models.NotificationJob) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: plannertemporal.DefaultActivityTimeout,
		RetryPolicy: &sdktemporal.RetryPolicy{
			InitialInterval:    plannertemporal.DeliveryRetryBaseDelay,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    plannertemporal.DeliveryRetryMaxAttempts,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	logger := workflow.GetLogger(ctx)
	logger.Info("Delivering notification", "EventKey", job.EventKey, "UserID", job.UserID)

	var a *activities.Activities
	if err := workflow.ExecuteActivity(ctx, a.DeliverNotification, job).Get(ctx, nil); err != nil {
		logger.Error("Notification delivery failed.", "EventKey", job.EventKey, "error", err)
		return err
	}

	logger.Info("Notification delivered.", "EventKey", job.EventKey)
	return nil
}
