package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/plannerhub/planner-api/internal/reminder"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

const (
	// depWarnInterval throttles identical dependency warnings during an
	// extended outage.
	depWarnInterval = 5 * time.Minute
	// tickTimeout bounds a whole tick, including every processor.
	tickTimeout = 5 * time.Minute
)

// ReadinessChecker gates a tick on dependency health.
type ReadinessChecker interface {
	Check(ctx context.Context) Status
}

// Scheduler fires once per minute, aligned to minute boundaries, and runs
// every reminder processor concurrently with failure isolation. Ticks
// never overlap: a fire that arrives while one is in flight is skipped.
type Scheduler struct {
	probe      ReadinessChecker
	processors []reminder.Processor
	clock      clock.Clock
	cron       *cron.Cron
	logger     zerolog.Logger

	inFlight    atomic.Bool
	lastDepWarn time.Time // touched only from the tick goroutine
}

func New(probe ReadinessChecker, processors []reminder.Processor, clk clock.Clock, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		probe:      probe,
		processors: processors,
		clock:      clk,
		cron:       cron.New(),
		logger:     logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start registers the minute-aligned trigger and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.Tick); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info().Int("processors", len(s.processors)).Msg("reminder scheduler started")
	return nil
}

// Stop halts the trigger and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info().Msg("reminder scheduler stopped")
}

// Tick is one scheduling pass. Exported so tests can drive it directly.
func (s *Scheduler) Tick() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.logger.Debug().Msg("previous tick still running, skipping")
		return
	}
	defer s.inFlight.Store(false)

	now := s.clock.Now()
	ctx, cancel := context.WithTimeout(context.Background(), tickTimeout)
	defer cancel()

	status := s.probe.Check(ctx)
	if !status.DBOk || !status.QueueOk {
		// Skip the whole tick; reminders are recomputed from source data
		// next tick, so nothing needs to be queued up locally.
		if now.Sub(s.lastDepWarn) >= depWarnInterval {
			s.lastDepWarn = now
			s.logger.Warn().
				Bool("db_ok", status.DBOk).
				Bool("queue_ok", status.QueueOk).
				Msg("dependencies unavailable, skipping reminder tick")
		}
		return
	}

	tickID := uuid.NewString()
	var wg sync.WaitGroup
	for _, proc := range s.processors {
		wg.Add(1)
		go func(proc reminder.Processor) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error().
						Str("processor", proc.Name()).
						Str("tick_id", tickID).
						Interface("panic", r).
						Msg("reminder processor panicked")
				}
			}()
			if err := proc.Run(ctx, now); err != nil {
				s.logger.Error().
					Err(err).
					Str("processor", proc.Name()).
					Str("tick_id", tickID).
					Msg("reminder processor failed")
			}
		}(proc)
	}
	wg.Wait()
}
