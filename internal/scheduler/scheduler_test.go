package scheduler

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/plannerhub/planner-api/internal/reminder"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type stubProbe struct {
	status Status
	calls  int
}

func (s *stubProbe) Check(context.Context) Status {
	s.calls++
	return s.status
}

type stubProcessor struct {
	name     string
	runs     int
	err      error
	panicMsg string
	started  chan struct{}
	block    chan struct{}
}

func (p *stubProcessor) Name() string { return p.name }

func (p *stubProcessor) Run(context.Context, time.Time) error {
	p.runs++
	if p.started != nil {
		close(p.started)
	}
	if p.block != nil {
		<-p.block
	}
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	return p.err
}

func healthyProbe() *stubProbe {
	return &stubProbe{status: Status{DBOk: true, QueueOk: true}}
}

func TestTickSkipsProcessorsWhenDependenciesDown(t *testing.T) {
	probe := &stubProbe{status: Status{DBOk: false, QueueOk: true}}
	proc := &stubProcessor{name: "exam"}
	s := New(probe, []reminder.Processor{proc}, clock.NewMock(), zerolog.Nop())

	s.Tick()

	assert.Equal(t, 1, probe.calls)
	assert.Zero(t, proc.runs)
}

func TestTickThrottlesDependencyWarnings(t *testing.T) {
	probe := &stubProbe{status: Status{DBOk: true, QueueOk: false}}
	mock := clock.NewMock()
	var buf bytes.Buffer
	s := New(probe, nil, mock, zerolog.New(&buf))

	s.Tick()
	mock.Add(time.Minute)
	s.Tick()
	mock.Add(4 * time.Minute)
	s.Tick()

	warns := strings.Count(buf.String(), "dependencies unavailable")
	assert.Equal(t, 2, warns, "one warning per throttle interval")
}

func TestTickIsolatesProcessorFailures(t *testing.T) {
	probe := healthyProbe()
	ok := &stubProcessor{name: "ok"}
	failing := &stubProcessor{name: "failing", err: assert.AnError}
	panicking := &stubProcessor{name: "panicking", panicMsg: "boom"}
	var buf bytes.Buffer
	s := New(probe, []reminder.Processor{ok, failing, panicking}, clock.NewMock(), zerolog.New(&buf))

	s.Tick()

	assert.Equal(t, 1, ok.runs)
	assert.Equal(t, 1, failing.runs)
	assert.Equal(t, 1, panicking.runs)
	assert.Contains(t, buf.String(), "reminder processor failed")
	assert.Contains(t, buf.String(), "reminder processor panicked")
}

func TestTickNeverOverlaps(t *testing.T) {
	probe := healthyProbe()
	slow := &stubProcessor{
		name:    "slow",
		started: make(chan struct{}),
		block:   make(chan struct{}),
	}
	s := New(probe, []reminder.Processor{slow}, clock.NewMock(), zerolog.Nop())

	done := make(chan struct{})
	go func() {
		s.Tick()
		close(done)
	}()
	<-slow.started

	// A second fire while the first is in flight returns immediately.
	s.Tick()

	close(slow.block)
	<-done

	assert.Equal(t, 1, probe.calls)
	assert.Equal(t, 1, slow.runs)
}
