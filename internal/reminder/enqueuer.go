package reminder

import (
	"context"

	"github.com/pkg/errors"
	"github.com/plannerhub/planner-api/internal/models"
	plannertemporal "github.com/plannerhub/planner-api/internal/temporal"
	"github.com/plannerhub/planner-api/internal/temporal/workflows"
	"github.com/rs/zerolog"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
)

// workflowStarter is the slice of client.Client the enqueuer needs.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
}

// TemporalEnqueuer submits notification jobs with the dedup key as the
// workflow ID. The broker guarantees at most one active delivery per key;
// a refused duplicate is a successful no-op here.
type TemporalEnqueuer struct {
	starter workflowStarter
	ready   func() bool
	logger  zerolog.Logger
}

// NewTemporalEnqueuer wires the enqueuer to the Temporal client. ready is
// consulted synchronously before every submit; when the broker is down the
// job is skipped, not queued locally — minute-window reminders are
// recomputed on the next tick, daily heuristics lose that day's nudge.
func NewTemporalEnqueuer(starter workflowStarter, ready func() bool, logger zerolog.Logger) *TemporalEnqueuer {
	return &TemporalEnqueuer{
		starter: starter,
		ready:   ready,
		logger:  logger.With().Str("component", "enqueuer").Logger(),
	}
}

func (e *TemporalEnqueuer) Enqueue(ctx context.Context, key string, job models.NotificationJob) error {
	if !e.ready() {
		e.logger.Debug().Str("event_key", key).Msg("broker not connected, skipping enqueue")
		return nil
	}

	options := client.StartWorkflowOptions{
		ID:                                       plannertemporal.NotifyWorkflowIDPrefix + key,
		TaskQueue:                                plannertemporal.TaskQueueName,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}

	_, err := e.starter.ExecuteWorkflow(ctx, options, workflows.NotificationWorkflow, job)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			e.logger.Debug().Str("event_key", key).Msg("delivery already pending, deduplicated")
			return nil
		}
		return errors.Wrapf(err, "start delivery workflow for %s", key)
	}

	e.logger.Info().Str("event_key", key).Int64("user_id", job.UserID).Msg("notification job enqueued")
	return nil
}
