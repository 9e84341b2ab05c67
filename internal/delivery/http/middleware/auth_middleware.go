package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/delivery/http/response"
	"friendlocator/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// accessTokenParam carries the token on stream requests, since EventSource clients
// cannot set headers.
const accessTokenParam = "access_token"

// AuthMiddleware authenticates callers with identity-provider ID tokens.
type AuthMiddleware struct {
	verifier service.TokenVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.TokenVerifier, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// Authenticate verifies the bearer token and stores the caller id and verified email
// on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		rawToken, ok := bearerToken(c)
		if !ok {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing or malformed")
		}

		ctx := c.Request().Context()
		identity, err := m.verifier.Verify(ctx, rawToken)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Token rejected", slog.Any("error", err))

			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		deliverycontext.SetUserID(c, identity.UserID)
		deliverycontext.SetUserEmail(c, identity.Email)
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", identity.UserID)))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		token := c.QueryParam(accessTokenParam)

		return token, token != ""
	}

	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])

	return token, token != ""
}
