package worker

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"friendlocator/config"
	"friendlocator/internal/delivery/worker/handler"
	"friendlocator/internal/domain/constants"
	"friendlocator/internal/infra/metrics"
	mockUC "friendlocator/internal/mocks/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestWorker(t *testing.T, cleanup *mockUC.MockCleanupUsecase) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{PubSub: &config.PubSubConfig{}}
	cfg.Env.Env = constants.EnvDevelop
	cfg.Worker.MaxRequestBodySize = "100KB"

	reg := metrics.NewRegistry()
	metrics.NewFanoutMetrics(reg).IncTrigger("alert_created", metrics.OutcomeSent)

	return newEcho(ServerParams{
		Cfg:         cfg,
		Logger:      logger,
		Registry:    reg,
		Auth:        handler.NewOIDCAuth(cfg, logger),
		PushHandler: handler.NewPushHandler(handler.PushHandlerParams{Fanout: mockUC.NewMockFanoutUsecase(t), Logger: logger}),
		JobHandler:  handler.NewJobHandler(handler.JobHandlerParams{Cleanup: cleanup, Logger: logger}),
	})
}

func TestWorkerServer_Routes(t *testing.T) {
	cleanup := mockUC.NewMockCleanupUsecase(t)
	cleanup.EXPECT().CleanupStaleLocations(mock.Anything).Return(3, nil).Once()
	srv := newTestWorker(t, cleanup)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `fanout_trigger_outcomes_total{outcome="sent",trigger="alert_created"} 1`)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs/cleanup-locations", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"removed":3`)
}

func TestWorkerServer_PushAcksGarbage(t *testing.T) {
	srv := newTestWorker(t, mockUC.NewMockCleanupUsecase(t))

	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader("garbage"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCleanupJob(t *testing.T) {
	cleanup := mockUC.NewMockCleanupUsecase(t)
	cleanup.EXPECT().CleanupStaleLocations(mock.Anything).Return(0, errors.New("boom")).Once()

	jobs := NewJobRegistry(cleanup).Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, CleanupJobName, jobs[0].Name())
	assert.ErrorContains(t, jobs[0].Run(context.Background()), "boom")
}
