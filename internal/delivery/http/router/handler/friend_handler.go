package handler

import (
	"log/slog"

	"friendlocator/internal/delivery/http/response"
	"friendlocator/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// FriendHandlerParams holds dependencies for FriendHandler, injected by Fx.
type FriendHandlerParams struct {
	fx.In

	FriendshipUC usecase.FriendshipUsecase
	Logger       *slog.Logger
}

// FriendHandler serves the friend list.
type FriendHandler struct {
	friendshipUC usecase.FriendshipUsecase
	logger       *slog.Logger
}

// NewFriendHandler is the constructor for FriendHandler
func NewFriendHandler(params FriendHandlerParams) *FriendHandler {
	return &FriendHandler{
		friendshipUC: params.FriendshipUC,
		logger:       params.Logger,
	}
}

// Stream handles GET /friends/stream
func (h *FriendHandler) Stream(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.friendshipUC.WatchFriends(c.Request().Context(), userID), h.logger)
}

// ListIDs handles GET /friends/ids
func (h *FriendHandler) ListIDs(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ids, err := h.friendshipUC.ListFriendIDs(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}

	return response.OK(c, ids, "")
}

// Remove handles DELETE /friends/:friendId
func (h *FriendHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.friendshipUC.RemoveFriend(c.Request().Context(), userID, c.Param("friendId")); err != nil {
		return err
	}

	return response.OK(c, nil, "Friend removed")
}
