package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDailyGateAdmitsOncePerDay(t *testing.T) {
	gate := NewDailyGate(9, 0)
	at := func(hour, minute int) time.Time {
		return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
	}

	assert.False(t, gate.ShouldRun("job", at(8, 59)), "before the gate minute")
	assert.True(t, gate.ShouldRun("job", at(9, 0)))
	assert.False(t, gate.ShouldRun("job", at(9, 1)), "already ran today")
	assert.False(t, gate.ShouldRun("job", at(23, 59)))

	assert.True(t, gate.ShouldRun("job", at(9, 0).AddDate(0, 0, 1)), "next day re-admits")
}

func TestDailyGateCatchesUpAfterMissedTick(t *testing.T) {
	gate := NewDailyGate(9, 0)

	// The 09:00 tick was missed; the 09:07 tick still runs the task.
	now := time.Date(2026, 3, 10, 9, 7, 0, 0, time.UTC)
	assert.True(t, gate.ShouldRun("job", now))
	assert.False(t, gate.ShouldRun("job", now.Add(time.Minute)))
}

func TestDailyGateTracksTasksIndependently(t *testing.T) {
	gate := NewDailyGate(9, 0)
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, gate.ShouldRun("a", now))
	assert.True(t, gate.ShouldRun("b", now))
	assert.False(t, gate.ShouldRun("a", now))
}
