package handler

import (
	"log/slog"

	"friendlocator/internal/delivery/http/response"
	"friendlocator/internal/domain/entity"
	"friendlocator/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// selfAlias lets GET /locations/me read the caller's own location.
const selfAlias = "me"

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	LocationUC usecase.LocationUsecase
	Logger     *slog.Logger
}

// LocationHandler holds dependencies for location-related handlers
type LocationHandler struct {
	locationUC usecase.LocationUsecase
	logger     *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		locationUC: params.LocationUC,
		logger:     params.Logger,
	}
}

// UpdateLocationRequest is one location sample. Latitude and longitude are pointers
// because zero is a valid coordinate.
type UpdateLocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Accuracy  float64  `json:"accuracy" validate:"gte=0"`
	Altitude  float64  `json:"altitude"`
	Speed     float64  `json:"speed" validate:"gte=0"`
	Bearing   float64  `json:"bearing" validate:"gte=0,lte=360"`
}

// UpdateMine handles PUT /locations/me
func (h *LocationHandler) UpdateMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateLocationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	location, err := h.locationUC.UpdateLocation(c.Request().Context(), userID, &usecase.LocationInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
		Accuracy:  req.Accuracy,
		Altitude:  req.Altitude,
		Speed:     req.Speed,
		Bearing:   req.Bearing,
	})
	if err != nil {
		return err
	}

	return response.OK(c, location, "Location updated")
}

// DeleteMine handles DELETE /locations/me
func (h *LocationHandler) DeleteMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.locationUC.DeleteLocation(c.Request().Context(), userID); err != nil {
		return err
	}

	return response.OK(c, nil, "Location removed")
}

// Get handles GET /locations/:userId
func (h *LocationHandler) Get(c echo.Context) error {
	viewerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	targetID := c.Param("userId")
	if targetID == selfAlias {
		targetID = viewerID
	}

	location, err := h.locationUC.GetLocation(c.Request().Context(), viewerID, targetID)
	if err != nil {
		return err
	}

	return response.OK(c, location, "")
}

// Friends handles GET /locations/friends
func (h *LocationHandler) Friends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	locations, err := h.locationUC.FriendLocations(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	if locations == nil {
		locations = []*entity.FriendLocation{}
	}

	return response.OK(c, locations, "")
}

// StreamFriends handles GET /locations/friends/stream
func (h *LocationHandler) StreamFriends(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.locationUC.WatchFriendLocations(c.Request().Context(), userID), h.logger)
}
