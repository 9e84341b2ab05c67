// Package handler holds the worker endpoints: the Pub/Sub push receiver and the
// scheduled job triggers.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// PushHandler receives document events and hands them to the fan-out. Every message
// that passed authentication is acknowledged with 200: triggers never report errors,
// and a malformed message would fail the same way on every redelivery.
type PushHandler struct {
	fanout usecase.FanoutUsecase
	logger *slog.Logger
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Fanout usecase.FanoutUsecase
	Logger *slog.Logger
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	return &PushHandler{
		fanout: params.Fanout,
		logger: params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		logger.Error("[Worker] Failed to parse push message, dropping", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	event, err := decodeEvent(&pushMsg)
	if err != nil {
		logger.Error("[Worker] Failed to decode document event, dropping",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	// Priority: message attributes > event field > existing context
	requestID := extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Debug("[Worker] Dispatching document event",
		slog.String("event_id", event.EventID),
		slog.String("collection", event.Collection),
		slog.String("kind", string(event.Kind)),
	)

	h.fanout.Dispatch(ctx, event)

	return c.NoContent(http.StatusOK)
}

func decodeEvent(pushMsg *PubSubMessage) (*service.DocumentEvent, error) {
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.DocumentEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "unmarshal document event")
	}
	if event.Collection == "" {
		return nil, errors.New("document event without collection")
	}

	// Redeliveries keep the message id, so it can stand in for a missing event id.
	if event.EventID == "" {
		event.EventID = pushMsg.Message.MessageID
	}

	return &event, nil
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.DocumentEvent) string {
	if requestID := pushMsg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	// Set by RequestIDMiddleware from the X-Request-Id header
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}
