package notification

import (
	"context"
	"log/slog"

	"friendlocator/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/fx"
)

// PushParams holds dependencies for NewPushService, injected by Fx
type PushParams struct {
	fx.In

	Ctx    context.Context
	App    *firebase.App `optional:"true"`
	Logger *slog.Logger
}

// NewPushService picks FCM when a Firebase app is available and the logging service otherwise.
func NewPushService(params PushParams) (service.PushService, error) {
	if params.App == nil {
		params.Logger.Warn("Firebase app unavailable, push messages are only logged")

		return NewLogPushService(params.Logger), nil
	}

	return NewFirebaseService(params.Ctx, params.App)
}

// Module provides the push delivery FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewPushService),
)
