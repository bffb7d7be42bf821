package temporal

import "time"

// TaskQueueName is the Temporal task queue shared by the reminder
// enqueuer and the notification delivery worker.
const TaskQueueName = "PLANNER_NOTIFICATIONS"

// NotifyWorkflowIDPrefix prefixes every delivery workflow ID. The rest of
// the ID is the reminder's dedup key, which is what makes the broker
// refuse a second active job for the same logical reminder.
const NotifyWorkflowIDPrefix = "notify/"

// DefaultActivityTimeout bounds a single delivery attempt.
const DefaultActivityTimeout = time.Minute

// Delivery retry policy: bounded attempts with exponential backoff. After
// the last attempt the workflow fails and stays visible in Temporal.
const (
	DeliveryRetryBaseDelay   = 2 * time.Second
	DeliveryRetryMaxAttempts = 3
)
