package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/infra/scheduler"
	"friendlocator/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// JobHandler exposes scheduled jobs to an external scheduler.
type JobHandler struct {
	cleanup usecase.CleanupUsecase
	lease   scheduler.Lock
	logger  *slog.Logger
}

// JobHandlerParams holds dependencies for the JobHandler
type JobHandlerParams struct {
	fx.In

	Cleanup usecase.CleanupUsecase
	// Lease is shared with the in-process scheduler. Without it every trigger runs.
	Lease  scheduler.Lock `optional:"true"`
	Logger *slog.Logger
}

// NewJobHandler creates the job trigger handler
func NewJobHandler(params JobHandlerParams) *JobHandler {
	return &JobHandler{
		cleanup: params.Cleanup,
		lease:   params.Lease,
		logger:  params.Logger,
	}
}

// CleanupLocations handles POST /jobs/cleanup-locations. A trigger inside the daily
// lease is skipped. A failed run answers 500 so the scheduler records it, but is not
// retried here.
func (h *JobHandler) CleanupLocations(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if h.lease != nil {
		acquired, err := h.lease.Acquire(ctx)
		if err != nil {
			logger.Error("[Worker] Cleanup lease unavailable", slog.Any("error", err))

			return c.JSON(http.StatusInternalServerError, map[string]string{"status": "failed"})
		}
		if !acquired {
			logger.Info("[Worker] Cleanup already ran within the lease, skipping")

			return c.JSON(http.StatusOK, map[string]string{"status": "skipped"})
		}
	}

	removed, err := h.cleanup.CleanupStaleLocations(ctx)
	if err != nil {
		logger.Error("[Worker] Stale location cleanup failed", slog.Any("error", err))

		return c.JSON(http.StatusInternalServerError, map[string]string{"status": "failed"})
	}

	return c.JSON(http.StatusOK, map[string]any{"status": "ok", "removed": removed})
}
