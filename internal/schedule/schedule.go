// Package schedule wraps robfig/cron into a cancellable repeating task.
package schedule

import (
	"time"

	"github.com/robfig/cron/v3"
)

// Repeating runs a job at a fixed interval. At most one invocation runs at a
// time: if the job is still running when the next tick fires, that tick is
// skipped rather than overlapped. A panicking job is recovered and logged so
// it cannot kill the scheduler.
type Repeating struct {
	c *cron.Cron
}

// NewRepeating creates a repeating task. Intervals are rounded to whole
// seconds by the underlying cron schedule, with a one-second minimum.
func NewRepeating(interval time.Duration, job func()) *Repeating {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
		cron.Recover(cron.DefaultLogger),
	))
	c.Schedule(cron.Every(interval), cron.FuncJob(job))
	return &Repeating{c: c}
}

// Start begins firing the job. It is a no-op if already started.
func (r *Repeating) Start() {
	r.c.Start()
}

// Stop prevents any further invocations from starting. An invocation already
// in flight is allowed to finish.
func (r *Repeating) Stop() {
	r.c.Stop()
}
