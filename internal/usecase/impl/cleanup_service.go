package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/domain/entity"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/infra/metrics"
	"friendlocator/internal/usecase"

	"go.uber.org/fx"
)

// maxDeletesPerTransaction is the Firestore limit on writes in one commit.
const maxDeletesPerTransaction = 500

// cleanupService implements the CleanupUsecase interface.
type cleanupService struct {
	txManager repository.TransactionManager
	metrics   *metrics.FanoutMetrics
	logger    *slog.Logger
	now       func() time.Time
}

// CleanupServiceParams holds dependencies for CleanupService, injected by Fx.
type CleanupServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Metrics   *metrics.FanoutMetrics `optional:"true"`
	Logger    *slog.Logger
}

// NewCleanupService is the constructor for cleanupService.
func NewCleanupService(params CleanupServiceParams) usecase.CleanupUsecase {
	return &cleanupService{
		txManager: params.TxManager,
		metrics:   params.Metrics,
		logger:    params.Logger,
		now:       time.Now,
	}
}

// CleanupStaleLocations deletes locations whose updated_at is before now minus the
// retention window. Each round queries and deletes in one transaction, so a location
// refreshed meanwhile is not removed.
func (srv *cleanupService) CleanupStaleLocations(ctx context.Context) (int, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	cutoff := srv.now().UTC().Add(-entity.LocationRetention)

	removed := 0
	for {
		var deleted int
		err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
			locations := factory.NewLocationRepository()

			stale, err := locations.FindLocationsUpdatedBefore(ctx, cutoff, maxDeletesPerTransaction)
			if err != nil {
				return domainerrors.NewDatabaseExecuteError(err, "failed to query stale locations")
			}

			for _, location := range stale {
				if err := locations.DeleteLocation(ctx, location.UserID); err != nil {
					return domainerrors.NewDatabaseExecuteError(err, "failed to delete stale location")
				}
			}
			deleted = len(stale)

			return nil
		})
		if err != nil {
			logger.Error("Stale location cleanup failed", slog.Int("removed", removed), slog.Any("error", err))

			return removed, err
		}

		removed += deleted
		srv.metrics.AddRemovedLocations(deleted)
		if deleted < maxDeletesPerTransaction {
			break
		}
	}

	logger.Info("Cleaned up stale locations", slog.Int("removed", removed), slog.Time("cutoff", cutoff))

	return removed, nil
}
