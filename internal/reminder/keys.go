package reminder

import (
	"fmt"
	"strings"
	"time"
)

// Dedup keys are the single source of idempotency for the whole pipeline:
// the broker refuses a second active job with the same key and the
// notifications table is unique on it. Identical logical reminder, identical
// key — always.

func ExamKey(examID, offsetMinutes int64) string {
	return fmt.Sprintf("exam:%d:%d", examID, offsetMinutes)
}

func AssignmentKey(assignmentID, offsetMinutes int64) string {
	return fmt.Sprintf("assignment:%d:%d", assignmentID, offsetMinutes)
}

func MilestoneKey(milestoneID, offsetMinutes int64) string {
	return fmt.Sprintf("milestone:%d:%d", milestoneID, offsetMinutes)
}

// StudyGoalAchievedKey is bucketed by ISO week: one celebration per goal
// per week, however often the processor re-evaluates it.
func StudyGoalAchievedKey(userID, courseID int64, now time.Time) string {
	return fmt.Sprintf("study-goal:achieved:%d:%d:%s", userID, courseID, isoWeekBucket(now))
}

// StudyGoalReminderKey includes the weekday and the ISO week, so the nudge
// fires at most once per designated day and resurfaces the next week.
func StudyGoalReminderKey(weekday time.Weekday, userID, courseID int64, now time.Time) string {
	day := strings.ToLower(weekday.String()[:3])
	return fmt.Sprintf("study-goal:reminder:%s:%d:%d:%s", day, userID, courseID, isoWeekBucket(now))
}

// SmartStudyKey is bucketed by calendar day: the nudge may recur daily
// while its condition holds.
func SmartStudyKey(userID, examID int64, now time.Time) string {
	return fmt.Sprintf("smart-study:%d:%d:%s", userID, examID, now.Format("2006-01-02"))
}

// ExamReviewKey has no time component: once handled, the prompt never
// repeats for that exam.
func ExamReviewKey(examID int64) string {
	return fmt.Sprintf("exam-review:%d", examID)
}

func isoWeekBucket(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
