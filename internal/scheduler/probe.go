package scheduler

import (
	"context"
	"database/sql"
	"sync/atomic"

	"go.temporal.io/sdk/client"
)

// Status is the outcome of one readiness check.
type Status struct {
	DBOk    bool `json:"db_ok"`
	QueueOk bool `json:"queue_ok"`
}

// healthChecker is the slice of client.Client the probe needs.
type healthChecker interface {
	CheckHealth(ctx context.Context, request *client.CheckHealthRequest) (*client.CheckHealthResponse, error)
}

// Probe gates all scheduled work on a single-attempt liveness check of the
// database and the job broker. No retries here; the next tick is the
// retry. The last broker status is cached so the enqueuer can consult it
// synchronously mid-tick.
type Probe struct {
	db      *sql.DB
	queue   healthChecker
	queueUp atomic.Bool
}

func NewProbe(db *sql.DB, queue healthChecker) *Probe {
	return &Probe{db: db, queue: queue}
}

func (p *Probe) Check(ctx context.Context) Status {
	var status Status
	if p.db != nil {
		status.DBOk = p.db.PingContext(ctx) == nil
	}
	if p.queue != nil {
		_, err := p.queue.CheckHealth(ctx, &client.CheckHealthRequest{})
		status.QueueOk = err == nil
	}
	p.queueUp.Store(status.QueueOk)
	return status
}

// QueueReady reports the broker status as of the last Check.
func (p *Probe) QueueReady() bool {
	return p.queueUp.Load()
}
