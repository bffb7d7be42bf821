package reminder

import (
	"sync"
	"time"
)

// DailyGate admits a named sub-task once per day at or after a fixed
// wall-clock minute. The per-minute scheduler drives it; if the exact
// minute tick was missed, the task catches up on the next tick of the day
// instead of silently skipping until tomorrow.
type DailyGate struct {
	hour   int
	minute int

	mu      sync.Mutex
	lastRun map[string]string // task name -> YYYY-MM-DD of last admission
}

func NewDailyGate(hour, minute int) *DailyGate {
	return &DailyGate{
		hour:    hour,
		minute:  minute,
		lastRun: make(map[string]string),
	}
}

// ShouldRun reports whether the task is due and marks it as run for the
// day when it is. State is in-process only; a restart later the same day
// may re-admit a task, which downstream dedup keys absorb.
func (g *DailyGate) ShouldRun(task string, now time.Time) bool {
	if now.Hour() < g.hour || (now.Hour() == g.hour && now.Minute() < g.minute) {
		return false
	}

	day := now.Format("2006-01-02")

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastRun[task] == day {
		return false
	}
	g.lastRun[task] = day
	return true
}
