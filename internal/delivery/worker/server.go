// Package worker is the HTTP surface of the fan-out binary.
package worker

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"friendlocator/config"
	"friendlocator/internal/delivery"
	"friendlocator/internal/delivery/middleware"
	"friendlocator/internal/delivery/worker/handler"
	"friendlocator/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type workerServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// ServerParams holds dependencies for the worker server
type ServerParams struct {
	fx.In

	Lc          fx.Lifecycle
	Cfg         *config.Config
	Logger      *slog.Logger
	Registry    *prometheus.Registry
	Auth        *handler.OIDCAuth
	PushHandler *handler.PushHandler
	JobHandler  *handler.JobHandler
}

// NewServer creates a new worker HTTP server
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &workerServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: newEcho(params),
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func newEcho(params ServerParams) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = params.Cfg.Worker.Timeouts.ReadTimeout
	e.Server.ReadHeaderTimeout = params.Cfg.Worker.Timeouts.ReadHeaderTimeout
	e.Server.WriteTimeout = params.Cfg.Worker.Timeouts.WriteTimeout
	e.Server.IdleTimeout = params.Cfg.Worker.Timeouts.IdleTimeout

	// Set up middleware in correct order
	// 1. Recover middleware first (to catch panics early)
	e.Use(echomiddleware.Recover())

	// 2. Request ID middleware (must be before logger to include in logs)
	e.Use(middleware.NewRequestIDMiddleware(params.Logger).Process)

	// 3. Logger middleware, quiet for health checks and scrapes
	e.Use(middleware.NewLoggerMiddleware(params.Logger, params.Cfg, "/health", "/metrics").Handle)

	e.Use(echomiddleware.BodyLimit(params.Cfg.Worker.MaxRequestBodySize))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(params.Registry, promhttp.HandlerOpts{
		Registry: params.Registry,
	})))

	// Pub/Sub push endpoint
	e.POST("/push", params.PushHandler.HandlePush, params.Auth.Middleware)

	jobs := e.Group("/jobs", params.Auth.Middleware)
	jobs.POST("/cleanup-locations", params.JobHandler.CleanupLocations)

	return e
}

// Serve starts the worker HTTP server
func (s *workerServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.Worker.Port))
	s.logger.Info("Starting Worker HTTP server", slog.String("host_port", hostPort))
	if err := s.server.Start(hostPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

// stop gracefully shuts down the worker server
func (s *workerServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down Worker HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
