package jobs

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"trooptreasury-engine/internal/config"
	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
	"trooptreasury-engine/internal/service"
)

const (
	JobAuditLedgers         = "audit-ledgers"
	JobPreviewDistributions = "preview-distributions"
)

// JobRunner coordinates all scheduled jobs. Jobs only read and log; nothing is written back.
type JobRunner struct {
	troopRepo repository.TroopRepository
	services  service.Services
	config    *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(troopRepo repository.TroopRepository, services service.Services, cfg *config.Config) *JobRunner {
	return &JobRunner{
		troopRepo: troopRepo,
		services:  services,
		config:    cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) error) (err error) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		logger.JobFinished(jobName, started, err)
	}()

	logger.Info("Starting job", "job", jobName)
	return jobFunc(context.Background())
}

// forEachTroop runs fn for every troop, at most Scheduler.TroopWorkers at a time, and returns the
// total failure count fn reported. A panic inside fn counts as one failure for that troop.
func (jr *JobRunner) forEachTroop(ctx context.Context, jobName string, troops []domain.Troop, fn func(ctx context.Context, troop domain.Troop) int) int {
	workers := config.DefaultTroopWorkers
	if jr.config != nil && jr.config.Scheduler.TroopWorkers > 0 {
		workers = jr.config.Scheduler.TroopWorkers
	}

	var failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(workers)
	for _, troop := range troops {
		troop := troop
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					failed.Add(1)
					logger.WithTroop(troop.ID).Error("Troop panicked", "job", jobName, "panic", fmt.Sprint(r))
				}
			}()
			failed.Add(int64(fn(ctx, troop)))
			return nil
		})
	}
	_ = g.Wait()
	return int(failed.Load())
}

// Run executes a job by name. "all" runs every job in order.
func (jr *JobRunner) Run(jobName string) error {
	switch jobName {
	case JobAuditLedgers:
		return jr.AuditLedgers()
	case JobPreviewDistributions:
		return jr.PreviewDistributions()
	case "all":
		auditErr := jr.AuditLedgers()
		previewErr := jr.PreviewDistributions()
		if auditErr != nil {
			return auditErr
		}
		return previewErr
	default:
		return fmt.Errorf("unknown job %q", jobName)
	}
}
