// Package scheduler runs registered jobs on a fixed 24 hour cadence. Every cycle first
// takes a lease that outlives the run, so at most one cycle happens per day across
// replicas and restarts. A run that fails is logged and counted, never retried.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"friendlocator/internal/infra/metrics"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Interval is the fixed cadence of scheduled runs.
const Interval = 24 * time.Hour

// Service executes registered jobs on a fixed cadence.
type Service struct {
	logger   *slog.Logger
	registry *Registry
	lock     Lock
	metrics  *metrics.CronJobMetrics
	interval time.Duration

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// ServiceParams holds dependencies for NewService, injected by Fx
type ServiceParams struct {
	fx.In

	Logger   *slog.Logger
	Registry *Registry
	Lock     Lock
	Metrics  *metrics.CronJobMetrics `optional:"true"`
}

// NewService builds a scheduler.
func NewService(params ServiceParams) (*Service, error) {
	return newService(params.Logger, params.Registry, params.Lock, params.Metrics, Interval)
}

func newService(logger *slog.Logger, registry *Registry, lock Lock, m *metrics.CronJobMetrics, interval time.Duration) (*Service, error) {
	if logger == nil {
		return nil, errors.New("logger required")
	}
	if lock == nil {
		return nil, errors.New("lock required")
	}
	if registry == nil {
		registry = NewRegistry()
	}

	return &Service{
		logger:   logger,
		registry: registry,
		lock:     lock,
		metrics:  m,
		interval: interval,
	}, nil
}

// Start launches the loop in the background.
func (s *Service) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()
}

// Stop cancels the loop and waits for the current cycle to finish.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

// Run attempts a cycle now and then every interval until ctx is cancelled. The start-up
// attempt only runs when no cycle happened within the lease.
func (s *Service) Run(ctx context.Context) {
	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")

			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	locked, err := s.lock.Acquire(ctx)
	if err != nil {
		s.logger.Error("Scheduler lock acquire failed", slog.Any("error", err))

		return
	}
	if !locked {
		s.logger.Info("Cycle already ran within the lease, skipping")

		return
	}

	for _, job := range s.registry.Jobs() {
		s.runJob(ctx, job)
	}

	// An interrupted cycle gives the lease back so the next start runs it again.
	if ctx.Err() != nil {
		if relErr := s.lock.Release(context.WithoutCancel(ctx)); relErr != nil {
			s.logger.Error("Failed to release scheduler lock", slog.Any("error", relErr))
		}
	}
}

func (s *Service) runJob(ctx context.Context, job Job) {
	logger := s.logger.With(slog.String("job", job.Name()))
	logger.Info("Job start")

	start := time.Now()
	err := job.Run(ctx)
	duration := time.Since(start)
	s.metrics.ObserveDuration(job.Name(), duration)

	if err != nil {
		logger.Error("Job failed", slog.Any("error", err), slog.Int64("duration_ms", duration.Milliseconds()))
		s.metrics.IncFailure(job.Name())

		return
	}

	logger.Info("Job completed", slog.Int64("duration_ms", duration.Milliseconds()))
	s.metrics.IncSuccess(job.Name())
}

// Module provides the scheduler FX module. Jobs are supplied by a *Registry provider.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewLock, NewService),
	fx.Invoke(func(lc fx.Lifecycle, svc *Service) {
		lc.Append(fx.Hook{
			OnStart: func(context.Context) error {
				svc.Start(context.Background())

				return nil
			},
			OnStop: func(context.Context) error {
				svc.Stop()

				return nil
			},
		})
	}),
)
