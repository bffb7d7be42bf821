package reminder

import "time"

// TriggerWindow matches the scheduler cadence. A reminder instant is
// eligible on exactly one tick as long as ticks are not skipped.
const TriggerWindow = time.Minute

// ShouldTrigger reports whether remindAt falls inside [now-1min, now].
// An instant that fell outside the window during an outage is permanently
// missed; there is no backfill.
func ShouldTrigger(remindAt, now time.Time) bool {
	return !remindAt.After(now) && !remindAt.Before(now.Add(-TriggerWindow))
}
