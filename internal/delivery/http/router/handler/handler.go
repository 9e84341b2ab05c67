// Package handler holds the echo handlers of the client API.
package handler

import (
	"net/http"

	deliverycontext "friendlocator/internal/delivery/context"
	domainerrors "friendlocator/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// currentUserID returns the caller id set by the auth middleware.
func currentUserID(c echo.Context) (string, error) {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return "", domainerrors.ErrInvalidToken
	}

	return userID, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(req)
}
