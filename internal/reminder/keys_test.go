package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventKeysAreDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "exam:42:1440", ExamKey(42, 1440))
	assert.Equal(t, "assignment:42:360", AssignmentKey(42, 360))
	assert.Equal(t, "milestone:42:60", MilestoneKey(42, 60))
	assert.Equal(t, "exam-review:42", ExamReviewKey(42))
	assert.Equal(t, "smart-study:7:42:2026-03-11", SmartStudyKey(7, 42, now))

	// Same inputs always produce the same key.
	assert.Equal(t, ExamKey(42, 1440), ExamKey(42, 1440))
	assert.Equal(t, StudyGoalAchievedKey(7, 3, now), StudyGoalAchievedKey(7, 3, now.Add(time.Hour)))
}

func TestEventKeysAreDistinctAcrossKinds(t *testing.T) {
	now := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	keys := []string{
		ExamKey(1, 60),
		AssignmentKey(1, 60),
		MilestoneKey(1, 60),
		ExamReviewKey(1),
		SmartStudyKey(1, 1, now),
		StudyGoalAchievedKey(1, 1, now),
		StudyGoalReminderKey(time.Wednesday, 1, 1, now),
	}

	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		assert.False(t, seen[key], "duplicate key %s", key)
		seen[key] = true
	}
}

func TestStudyGoalKeysBucketByISOWeek(t *testing.T) {
	// 2026-03-11 is a Wednesday in ISO week 11.
	wed := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "study-goal:achieved:7:3:2026-W11", StudyGoalAchievedKey(7, 3, wed))
	assert.Equal(t, "study-goal:reminder:wed:7:3:2026-W11", StudyGoalReminderKey(wed.Weekday(), 7, 3, wed))

	// Any instant within the same ISO week maps to the same bucket.
	sun := time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, StudyGoalAchievedKey(7, 3, wed), StudyGoalAchievedKey(7, 3, sun))

	// The following Monday starts a new bucket.
	mon := time.Date(2026, 3, 16, 0, 1, 0, 0, time.UTC)
	assert.NotEqual(t, StudyGoalAchievedKey(7, 3, wed), StudyGoalAchievedKey(7, 3, mon))
}

func TestSmartStudyKeyBucketsByDay(t *testing.T) {
	today := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, SmartStudyKey(7, 5, today), SmartStudyKey(7, 5, today.Add(10*time.Hour)))
	assert.NotEqual(t, SmartStudyKey(7, 5, today), SmartStudyKey(7, 5, today.AddDate(0, 0, 1)))
}

func TestExamReviewKeyHasNoTimeComponent(t *testing.T) {
	assert.Equal(t, "exam-review:5", ExamReviewKey(5))
}
