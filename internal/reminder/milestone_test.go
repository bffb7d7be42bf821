package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneProcessorSixHourOffset(t *testing.T) {
	due := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)
	milestones := &fakeMilestoneRepo{milestones: []models.Milestone{{
		ID:           9,
		UserID:       7,
		ProjectTitle: "TCC",
		Title:        "Entrega parcial",
		DueDate:      &due,
	}}}
	enq := &captureEnqueuer{}
	p := NewMilestoneProcessor(milestones, singleUserRepo(7, "ana@example.com", true), enq, 24*time.Hour, zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), due.Add(-6*time.Hour)))

	require.Len(t, enq.jobs, 1)
	job := enq.jobs[0]
	assert.Equal(t, "milestone:9:360", job.EventKey)
	assert.Equal(t, models.NotificationCategoryMilestone, job.Category)
	assert.Contains(t, job.Message, "Entrega parcial (TCC)")
}

func TestMilestoneProcessorSkipsCompletedAndUndated(t *testing.T) {
	due := time.Date(2026, 3, 12, 18, 0, 0, 0, time.UTC)
	milestones := &fakeMilestoneRepo{milestones: []models.Milestone{
		{ID: 9, UserID: 7, Title: "Concluído", DueDate: &due, Completed: true},
		{ID: 10, UserID: 7, Title: "Sem prazo"},
	}}
	enq := &captureEnqueuer{}
	p := NewMilestoneProcessor(milestones, singleUserRepo(7, "ana@example.com", true), enq, 24*time.Hour, zerolog.Nop())

	require.NoError(t, p.Run(context.Background(), due.Add(-6*time.Hour)))
	assert.Empty(t, enq.jobs)
}
