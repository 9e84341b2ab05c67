package auth

import (
	"context"
	"log/slog"

	"friendlocator/config"
	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for NewTokenVerifier, injected by Fx
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	App    *firebase.App `optional:"true"`
	Logger *slog.Logger
}

// NewTokenVerifier selects the token verifier configured under auth.provider.
func NewTokenVerifier(params VerifierParams) (service.TokenVerifier, error) {
	switch params.Config.Auth.Provider {
	case constants.AuthProviderFirebase:
		if params.App == nil {
			return nil, errors.New("firebase auth provider requires firebase.projectId")
		}
		params.Logger.Info("Verifying Firebase ID tokens")

		return NewFirebaseVerifier(params.Ctx, params.App)
	case constants.AuthProviderJWT:
		params.Logger.Warn("Verifying HS256 development tokens")

		return NewJWTVerifier(params.Config.Auth.JWTSecret)
	default:
		return nil, errors.Errorf("unknown auth provider: %s", params.Config.Auth.Provider)
	}
}

// Module provides the token verification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTokenVerifier),
)
