package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"friendlocator/internal/infra/metrics"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name  string
	runs  atomic.Int32
	err   error
	block chan struct{}
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	if j.block != nil {
		select {
		case <-j.block:
		case <-ctx.Done():
		}
	}

	return j.err
}

type stubLock struct {
	acquire  bool
	err      error
	released atomic.Int32
}

func (l *stubLock) Acquire(context.Context) (bool, error) { return l.acquire, l.err }

func (l *stubLock) Release(context.Context) error {
	l.released.Add(1)

	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_RunsImmediatelyAndEveryInterval(t *testing.T) {
	job := &countingJob{name: "cleanup"}
	svc, err := newService(testLogger(), NewRegistry(job), NewLocalLock(10*time.Millisecond), nil, 20*time.Millisecond)
	require.NoError(t, err)

	svc.Start(t.Context())
	defer svc.Stop()

	require.Eventually(t, func() bool { return job.runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestService_SkipsWhenLockHeldElsewhere(t *testing.T) {
	job := &countingJob{name: "cleanup"}
	lock := &stubLock{acquire: false}
	svc, err := newService(testLogger(), NewRegistry(job), lock, nil, time.Hour)
	require.NoError(t, err)

	svc.runCycle(t.Context())

	assert.Equal(t, int32(0), job.runs.Load())
	assert.Equal(t, int32(0), lock.released.Load())
}

func TestService_LockErrorSkipsCycle(t *testing.T) {
	job := &countingJob{name: "cleanup"}
	svc, err := newService(testLogger(), NewRegistry(job), &stubLock{err: errors.New("redis down")}, nil, time.Hour)
	require.NoError(t, err)

	svc.runCycle(t.Context())

	assert.Equal(t, int32(0), job.runs.Load())
}

func TestService_FailedJobIsNotRetried(t *testing.T) {
	failing := &countingJob{name: "failing", err: errors.New("boom")}
	next := &countingJob{name: "next"}
	lock := &stubLock{acquire: true}
	reg := prometheus.NewRegistry()
	m := metrics.NewCronJobMetrics(reg)

	svc, err := newService(testLogger(), NewRegistry(failing, next), lock, m, time.Hour)
	require.NoError(t, err)

	svc.runCycle(t.Context())

	assert.Equal(t, int32(1), failing.runs.Load())
	assert.Equal(t, int32(1), next.runs.Load())
	assert.Equal(t, int32(0), lock.released.Load(), "a failed run keeps the lease")

	count, err := prometheusCount(reg, "job_failure_total")
	require.NoError(t, err)
	assert.InDelta(t, 1, count, 0)
}

func TestService_StopWaitsForRunningJob(t *testing.T) {
	job := &countingJob{name: "slow", block: make(chan struct{})}
	svc, err := newService(testLogger(), NewRegistry(job), NewLocalLock(time.Hour), nil, time.Hour)
	require.NoError(t, err)

	svc.Start(context.Background())
	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	svc.Stop()
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestService_LeaseCoversRestartsAndReplicas(t *testing.T) {
	job := &countingJob{name: "cleanup"}
	lock := NewLocalLock(LeaseTTL)

	first, err := newService(testLogger(), NewRegistry(job), lock, nil, Interval)
	require.NoError(t, err)
	first.runCycle(t.Context())
	require.Equal(t, int32(1), job.runs.Load())

	// A restarted process or a second replica shares the lease.
	second, err := newService(testLogger(), NewRegistry(job), lock, nil, Interval)
	require.NoError(t, err)
	second.runCycle(t.Context())
	first.runCycle(t.Context())

	assert.Equal(t, int32(1), job.runs.Load())
}

func TestService_InterruptedCycleReleasesLease(t *testing.T) {
	job := &countingJob{name: "slow", block: make(chan struct{})}
	lock := &stubLock{acquire: true}
	svc, err := newService(testLogger(), NewRegistry(job), lock, nil, time.Hour)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	svc.runCycle(ctx)

	assert.Equal(t, int32(1), job.runs.Load())
	assert.Equal(t, int32(1), lock.released.Load())
}

func TestLocalLock(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	lock := NewLocalLock(LeaseTTL).(*localLock)
	lock.now = func() time.Time { return now }

	ok, err := lock.Acquire(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)

	now = now.Add(LeaseTTL - time.Minute)
	ok, err = lock.Acquire(t.Context())
	require.NoError(t, err)
	assert.False(t, ok, "held until the lease expires")

	now = now.Add(time.Minute)
	ok, err = lock.Acquire(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, lock.Release(t.Context()))
	ok, err = lock.Acquire(t.Context())
	require.NoError(t, err)
	assert.True(t, ok)
}

func prometheusCount(reg *prometheus.Registry, name string) (float64, error) {
	families, err := reg.Gather()
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			total += metric.GetCounter().GetValue()
		}
	}

	return total, nil
}
