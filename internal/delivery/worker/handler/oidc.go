package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"friendlocator/config"
	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/domain/constants"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// validateFunc matches idtoken.Validate.
type validateFunc func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// OIDCAuth verifies the Google-signed ID token that Pub/Sub push subscriptions and
// Cloud Scheduler attach to their requests. It is only enabled for the google
// provider outside development.
type OIDCAuth struct {
	enabled  bool
	audience string
	validate validateFunc
	logger   *slog.Logger
}

// NewOIDCAuth builds the verifier from the pubsub configuration.
func NewOIDCAuth(cfg *config.Config, logger *slog.Logger) *OIDCAuth {
	enabled := cfg.PubSub != nil &&
		cfg.PubSub.Provider == constants.PubSubProviderGoogle &&
		cfg.Env.Env != constants.EnvDevelop

	var audience string
	if cfg.PubSub != nil {
		audience = cfg.PubSub.PushAudience
	}

	return &OIDCAuth{
		enabled:  enabled,
		audience: audience,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// Enabled reports whether requests are verified.
func (a *OIDCAuth) Enabled() bool {
	return a.enabled
}

// Middleware rejects unverified requests with 401 so the sender does not treat them
// as delivered.
func (a *OIDCAuth) Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !a.enabled {
			return next(c)
		}

		if err := a.verify(c.Request()); err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), a.logger).
				Warn("[Worker] Invalid OIDC token", slog.String("path", c.Path()), slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}

		return next(c)
	}
}

func (a *OIDCAuth) verify(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	payload, err := a.validate(req.Context(), token, a.audienceFor(req))
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}

// audienceFor falls back to the URL of the endpoint, which is what push
// subscriptions use when no audience is configured.
func (a *OIDCAuth) audienceFor(req *http.Request) string {
	if a.audience != "" {
		return a.audience
	}

	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}

	return fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)
}
