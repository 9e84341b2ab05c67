package main

import (
	"context"
	"log/slog"
	"os"

	"friendlocator/config"
	"friendlocator/internal/delivery"
	"friendlocator/internal/delivery/worker"
	"friendlocator/internal/delivery/worker/handler"
	"friendlocator/internal/infra/cache"
	"friendlocator/internal/infra/firebase"
	logs "friendlocator/internal/infra/log"
	"friendlocator/internal/infra/metrics"
	"friendlocator/internal/infra/notification"
	"friendlocator/internal/infra/persistence"
	"friendlocator/internal/infra/scheduler"
	"friendlocator/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			firebase.NewApp,
		),
		persistence.Module,
		cache.Module,
		metrics.Module,
	)
}

func injectService() fx.Option {
	return fx.Options(
		notification.Module,
		// Daily stale location cleanup, also reachable on /jobs/cleanup-locations
		fx.Provide(worker.NewJobRegistry),
		scheduler.Module,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewFanoutService,
			impl.NewCleanupService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewOIDCAuth,
			handler.NewPushHandler,
			handler.NewJobHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
