// Package scheduler runs the pipeline on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is one schedulable unit of work.
type Job func(ctx context.Context) error

// Scheduler manages periodic pipeline runs.
type Scheduler struct {
	cron *cron.Cron
	log  *slog.Logger
}

// New creates a scheduler in the given timezone; logger may be nil.
func New(timezone string, log *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %s: %w", timezone, err)
	}
	if log == nil {
		log = slog.Default()
	}

	return &Scheduler{
		cron: cron.New(cron.WithLocation(loc)),
		log:  log,
	}, nil
}

// AddJob registers a job under a standard five-field cron schedule.
// Runs get a 30-minute deadline; a failed run is logged, not fatal.
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		start := time.Now()
		s.log.Info("scheduled job starting", "job", name)

		if err := job(ctx); err != nil {
			s.log.Error("scheduled job failed", "job", name, "error", err)
			return
		}
		s.log.Info("scheduled job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("scheduling job %s: %w", name, err)
	}

	s.log.Info("job scheduled", "job", name, "schedule", schedule)
	return nil
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once any
// in-flight job has returned.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
