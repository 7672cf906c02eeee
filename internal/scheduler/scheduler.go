package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one refresh run.
type Job func(ctx context.Context) error

// parser accepts six fields with seconds first, e.g. "0 30 22 * * 1-5".
var parser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Scheduler runs a job at every activation of a cron schedule. The job
// runs on the caller's goroutine; activations missed while it runs are
// skipped.
type Scheduler struct {
	Schedule cron.Schedule
	Job      Job
	Now      func() time.Time
	// After is the timer source; tests replace it to avoid sleeping.
	After func(d time.Duration) <-chan time.Time
}

// NewScheduler parses expr and binds job to it.
func NewScheduler(expr string, job Job) (*Scheduler, error) {
	sched, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return &Scheduler{
		Schedule: sched,
		Job:      job,
		Now:      time.Now,
		After:    time.After,
	}, nil
}

// Next returns the next activation after t.
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.Schedule.Next(t)
}

// RunNow executes the job once immediately.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.Job(ctx)
}

// Run blocks until ctx is done, running the job at each activation. Job
// errors are logged and do not stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Println("[INFO] scheduler started")
	defer log.Println("[INFO] scheduler stopped")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := s.Now()
		next := s.Next(now)
		if next.IsZero() {
			return fmt.Errorf("schedule has no future activation")
		}
		log.Printf("[INFO] next refresh at %s", next.Format(time.RFC3339))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.After(next.Sub(now)):
		}
		if err := s.Job(ctx); err != nil {
			log.Printf("[ERROR] refresh: %v", err)
		}
	}
}
