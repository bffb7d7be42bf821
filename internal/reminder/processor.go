package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/plannerhub/planner-api/internal/models"
	"github.com/plannerhub/planner-api/internal/repository"
)

// DefaultPageSize bounds candidate pages so memory stays flat regardless
// of dataset size. A short page signals the end of the scan.
const DefaultPageSize = 300

// Processor is one reminder kind's scan-and-enqueue pass. Run must be safe
// to retry on the next tick: dedup keys are deterministic and the
// notification store is an upsert, so a failure mid-page cannot block
// correct future triggers.
type Processor interface {
	Name() string
	Run(ctx context.Context, now time.Time) error
}

// Enqueuer submits one notification job under its dedup key.
type Enqueuer interface {
	Enqueue(ctx context.Context, key string, job models.NotificationJob) error
}

// userLoader memoizes preference lookups within a single Run so a page of
// candidates owned by the same user costs one query.
type userLoader struct {
	repo  repository.UserRepository
	cache map[int64]models.User
}

func newUserLoader(repo repository.UserRepository) *userLoader {
	return &userLoader{repo: repo, cache: make(map[int64]models.User)}
}

func (l *userLoader) get(ctx context.Context, id int64) (models.User, error) {
	if user, ok := l.cache[id]; ok {
		return user, nil
	}
	user, err := l.repo.GetByID(ctx, id)
	if err != nil {
		return models.User{}, fmt.Errorf("load user %d: %w", id, err)
	}
	l.cache[id] = user
	return user, nil
}

// OffsetLabel renders a reminder offset as the human label embedded in
// messages: "7 dia(s)" for day-scale offsets, "6 hora(s)" otherwise.
func OffsetLabel(offsetMinutes int64) string {
	if offsetMinutes >= 1440 {
		return fmt.Sprintf("%d dia(s)", offsetMinutes/1440)
	}
	return fmt.Sprintf("%d hora(s)", offsetMinutes/60)
}

// startOfISOWeek returns Monday 00:00 of now's ISO week, in now's location.
func startOfISOWeek(now time.Time) time.Time {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday belongs to the week that started last Monday
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}
