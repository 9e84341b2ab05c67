// Package context carries request-scoped values (request id, logger, caller id)
// between the delivery layer and the usecases.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeyUserID is the key of the authenticated caller id.
	KeyUserID ContextKey = "user_id"

	// KeyUserEmail is the key of the caller's verified email.
	KeyUserEmail ContextKey = "user_email"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context.
// If not found, generates a new UUID.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext returns the request id stored in ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger returns the request-scoped logger stored in ctx, or nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault returns the request-scoped logger, falling back to fallback.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetUserID stores the authenticated caller id in echo.Context.
func SetUserID(c echo.Context, userID string) {
	c.Set(string(KeyUserID), userID)
}

// GetUserID returns the authenticated caller id and whether one was set.
func GetUserID(c echo.Context) (string, bool) {
	userID, ok := c.Get(string(KeyUserID)).(string)

	return userID, ok && userID != ""
}

// SetUserEmail stores the caller's verified email in echo.Context.
func SetUserEmail(c echo.Context, email string) {
	c.Set(string(KeyUserEmail), email)
}

// GetUserEmail returns the caller's verified email, or "" when the token carried none.
func GetUserEmail(c echo.Context) string {
	email, _ := c.Get(string(KeyUserEmail)).(string)

	return email
}
