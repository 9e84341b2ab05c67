// Package firebase bootstraps the Firebase app shared by the document store, push
// delivery and token verification.
package firebase

import (
	"context"
	"log/slog"

	"friendlocator/config"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
)

// AppParams holds dependencies for NewApp, injected by Fx
type AppParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewApp initializes the Firebase app. It returns a nil app when no project is
// configured, in which case the Firebase-backed components fall back to their local
// counterparts.
func NewApp(params AppParams) (*firebase.App, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.ProjectID == "" {
		params.Logger.Info("Firebase project not configured, Firebase services disabled")

		return nil, nil
	}

	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	app, err := firebase.NewApp(params.Ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	params.Logger.Info("Firebase app initialized", slog.String("project_id", cfg.ProjectID))

	return app, nil
}
