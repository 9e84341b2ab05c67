package worker

import (
	"context"

	"friendlocator/internal/infra/scheduler"
	"friendlocator/internal/usecase"

	"github.com/pkg/errors"
)

// CleanupJobName identifies the stale location cleanup in logs and job metrics.
const CleanupJobName = "cleanup-stale-locations"

type cleanupJob struct {
	cleanup usecase.CleanupUsecase
}

func (j *cleanupJob) Name() string {
	return CleanupJobName
}

func (j *cleanupJob) Run(ctx context.Context) error {
	_, err := j.cleanup.CleanupStaleLocations(ctx)

	return errors.WithStack(err)
}

// NewJobRegistry registers the jobs run by the in-process scheduler.
func NewJobRegistry(cleanup usecase.CleanupUsecase) *scheduler.Registry {
	return scheduler.NewRegistry(&cleanupJob{cleanup: cleanup})
}
