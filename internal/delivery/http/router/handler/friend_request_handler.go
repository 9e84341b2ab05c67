package handler

import (
	"log/slog"

	"friendlocator/internal/delivery/http/response"
	"friendlocator/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FriendRequestHandlerParams holds dependencies for FriendRequestHandler, injected by Fx.
type FriendRequestHandlerParams struct {
	fx.In

	FriendshipUC usecase.FriendshipUsecase
	Logger       *slog.Logger
}

// FriendRequestHandler serves the friend request lifecycle.
type FriendRequestHandler struct {
	friendshipUC usecase.FriendshipUsecase
	logger       *slog.Logger
}

// NewFriendRequestHandler is the constructor for FriendRequestHandler
func NewFriendRequestHandler(params FriendRequestHandlerParams) *FriendRequestHandler {
	return &FriendRequestHandler{
		friendshipUC: params.FriendshipUC,
		logger:       params.Logger,
	}
}

// SendFriendRequestRequest addresses a request by the recipient's email.
type SendFriendRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Send handles POST /friend-requests
func (h *FriendRequestHandler) Send(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req SendFriendRequestRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	request, err := h.friendshipUC.SendFriendRequest(c.Request().Context(), userID, req.Email)
	if err != nil {
		return err
	}

	return response.Created(c, request, "Friend request sent")
}

// Accept handles POST /friend-requests/:id/accept
func (h *FriendRequestHandler) Accept(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	friendship, err := h.friendshipUC.AcceptFriendRequest(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return response.OK(c, friendship, "Friend request accepted")
}

// Decline handles POST /friend-requests/:id/decline
func (h *FriendRequestHandler) Decline(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipUC.DeclineFriendRequest(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return response.OK(c, nil, "Friend request declined")
}

// StreamPending handles GET /friend-requests/pending/stream
func (h *FriendRequestHandler) StreamPending(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.friendshipUC.WatchPendingRequests(c.Request().Context(), userID), h.logger)
}

// StreamSent handles GET /friend-requests/sent/stream
func (h *FriendRequestHandler) StreamSent(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.friendshipUC.WatchSentRequests(c.Request().Context(), userID), h.logger)
}
