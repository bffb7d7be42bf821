package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShouldTrigger(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.True(t, ShouldTrigger(now, now), "instant at now is eligible")
	assert.True(t, ShouldTrigger(now.Add(-30*time.Second), now))
	assert.True(t, ShouldTrigger(now.Add(-TriggerWindow), now), "lower bound is inclusive")

	assert.False(t, ShouldTrigger(now.Add(-TriggerWindow-time.Millisecond), now), "older than the window is missed")
	assert.False(t, ShouldTrigger(now.Add(time.Millisecond), now), "future instants wait for a later tick")
}

func TestShouldTriggerOffsetInstant(t *testing.T) {
	examDate := time.Date(2026, 3, 11, 14, 0, 0, 0, time.UTC)
	remindAt := examDate.Add(-1440 * time.Minute)

	assert.True(t, ShouldTrigger(remindAt, examDate.Add(-24*time.Hour)))
	assert.False(t, ShouldTrigger(remindAt, examDate.Add(-24*time.Hour-2*time.Minute)))
	assert.False(t, ShouldTrigger(remindAt, examDate.Add(-24*time.Hour+2*time.Minute)))
}
