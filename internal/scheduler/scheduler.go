package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"trooptreasury-engine/internal/jobs"
	"trooptreasury-engine/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a scheduler and registers every job on its configured schedule
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// UTC with seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler
	log := logger.WithComponent("scheduler")

	entries := []struct {
		name string
		spec string
		run  func() error
	}{
		{jobs.JobAuditLedgers, cfg.AuditLedgers, s.jobs.AuditLedgers},
		{jobs.JobPreviewDistributions, cfg.PreviewDistributions, s.jobs.PreviewDistributions},
	}

	for _, e := range entries {
		// Errors are already logged by the runner.
		run := e.run
		if _, err := s.cron.AddFunc(e.spec, func() { _ = run() }); err != nil {
			return fmt.Errorf("register %s job with schedule %q: %w", e.name, e.spec, err)
		}
		log.Info("Registered job", "job", e.name, "schedule", e.spec)
	}
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop waits for running jobs and stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// NextRun returns when the first registered job fires next, or the zero time if none is registered
func (s *Scheduler) NextRun(from time.Time) time.Time {
	var next time.Time
	for _, e := range s.cron.Entries() {
		if t := e.Schedule.Next(from); next.IsZero() || t.Before(next) {
			next = t
		}
	}
	return next
}
