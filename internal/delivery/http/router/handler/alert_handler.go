package handler

import (
	"log/slog"

	"friendlocator/internal/delivery/http/response"
	"friendlocator/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AlertHandlerParams holds dependencies for AlertHandler, injected by Fx.
type AlertHandlerParams struct {
	fx.In

	AlertUC usecase.AlertUsecase
	Logger  *slog.Logger
}

// AlertHandler serves alerts between friends.
type AlertHandler struct {
	alertUC usecase.AlertUsecase
	logger  *slog.Logger
}

// NewAlertHandler is the constructor for AlertHandler
func NewAlertHandler(params AlertHandlerParams) *AlertHandler {
	return &AlertHandler{
		alertUC: params.AlertUC,
		logger:  params.Logger,
	}
}

// SendAlertRequest pings a friend. An empty message uses the default text.
type SendAlertRequest struct {
	ToUserID string `json:"to_user_id" validate:"required"`
	Message  string `json:"message" validate:"max=500"`
}

// Send handles POST /alerts
func (h *AlertHandler) Send(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req SendAlertRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	alert, err := h.alertUC.SendAlert(c.Request().Context(), userID, req.ToUserID, req.Message)
	if err != nil {
		return err
	}

	return response.Created(c, alert, "Alert sent")
}

// Stream handles GET /alerts/stream
func (h *AlertHandler) Stream(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.alertUC.WatchReceived(c.Request().Context(), userID), h.logger)
}

// StreamUnread handles GET /alerts/unread/stream
func (h *AlertHandler) StreamUnread(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.alertUC.WatchUnreadCount(c.Request().Context(), userID), h.logger)
}

// MarkRead handles POST /alerts/:id/read
func (h *AlertHandler) MarkRead(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.alertUC.MarkRead(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, nil, "Alert marked as read")
}

// Delete handles DELETE /alerts/:id
func (h *AlertHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.alertUC.DeleteAlert(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, nil, "Alert deleted")
}
