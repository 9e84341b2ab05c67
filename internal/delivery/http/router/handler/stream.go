package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	deliverycontext "friendlocator/internal/delivery/context"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/repository"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// heartbeatInterval keeps idle streams open through proxies.
const heartbeatInterval = 25 * time.Second

type streamError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// stream writes every snapshot of sub as one Server-Sent Events data frame until the
// client goes away or the subscription ends. A subscription that ends with an error
// is reported as a final "error" event.
func stream[T any](c echo.Context, sub *repository.Subscription[T], fallback *slog.Logger) error {
	defer sub.Close()

	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, fallback)
	res := c.Response()

	header := res.Header()
	header.Set(echo.HeaderContentType, "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")

	// Streams outlive the server write timeout.
	_ = http.NewResponseController(res.Writer).SetWriteDeadline(time.Time{})

	res.WriteHeader(http.StatusOK)
	res.Flush()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			if _, err := fmt.Fprint(res, ": ping\n\n"); err != nil {
				return nil
			}
			res.Flush()

		case snapshot, ok := <-sub.Updates():
			if !ok {
				if err := sub.Err(); err != nil {
					logger.Error("Stream ended with error", slog.String("path", c.Path()), slog.Any("error", err))
					_ = writeFrame(res, "error", toStreamError(err))
				}

				return nil
			}
			if err := writeFrame(res, "", snapshot); err != nil {
				logger.Debug("Stream write failed", slog.Any("error", err))

				return nil
			}
		}
	}
}

func writeFrame(res *echo.Response, event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.WithStack(err)
	}
	if event != "" {
		if _, err := fmt.Fprintf(res, "event: %s\n", event); err != nil {
			return errors.WithStack(err)
		}
	}
	if _, err := fmt.Fprintf(res, "data: %s\n\n", data); err != nil {
		return errors.WithStack(err)
	}
	res.Flush()

	return nil
}

func toStreamError(err error) streamError {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return streamError{Code: appErr.ErrorCode(), Message: appErr.Message()}
	}

	return streamError{Code: domainerrors.ErrInternalError.ErrorCode(), Message: domainerrors.ErrInternalError.Message()}
}
