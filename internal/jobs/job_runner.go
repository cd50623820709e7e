package jobs

import (
	"context"
	"time"

	"homestay-backend/internal/config"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/repository"
	"homestay-backend/internal/service"
	"homestay-backend/internal/storage"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repos        repository.Repositories
	images       storage.ImageStore
	reservations service.ReservationService
	config       *config.Config
	now          func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	repos repository.Repositories,
	images storage.ImageStore,
	reservations service.ReservationService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		repos:        repos,
		images:       images,
		reservations: reservations,
		config:       cfg,
		now:          time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) (int, error)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	start := jr.now()
	count, err := jobFunc(context.Background())
	if err != nil {
		logger.Error("Job failed", "job", jobName, "processed", count, "error", err)
		return
	}
	logger.Info("Job completed", "job", jobName, "processed", count, "duration", jr.now().Sub(start))
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.ExpireStaleRequests()
	jr.PurgeOrphanImages()
}
