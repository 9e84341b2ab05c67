package handler

import (
	"log/slog"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/delivery/http/response"
	"friendlocator/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// UserHandler serves the caller's profile and settings.
type UserHandler struct {
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// UpsertProfileRequest is written by the client after every sign in. The stored email
// always comes from the token; a body email must match it.
type UpsertProfileRequest struct {
	Email             string `json:"email" validate:"omitempty,email"`
	DisplayName       string `json:"display_name" validate:"max=100"`
	ProfilePictureURL string `json:"profile_picture_url" validate:"omitempty,url"`
	FCMToken          string `json:"fcm_token"`
}

// UpdateFCMTokenRequest replaces the push token.
type UpdateFCMTokenRequest struct {
	FCMToken string `json:"fcm_token" validate:"required"`
}

// LocationSharingRequest toggles location sharing.
type LocationSharingRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// UpsertProfile handles PUT /users/me
func (h *UserHandler) UpsertProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpsertProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.UpsertProfile(c.Request().Context(), userID, &usecase.ProfileInput{
		Email:             req.Email,
		VerifiedEmail:     deliverycontext.GetUserEmail(c),
		DisplayName:       req.DisplayName,
		ProfilePictureURL: req.ProfilePictureURL,
		FCMToken:          req.FCMToken,
	})
	if err != nil {
		return err
	}

	return response.OK(c, user, "Profile saved")
}

// GetMe handles GET /users/me
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.OK(c, user, "")
}

// StreamMe handles GET /users/me/stream
func (h *UserHandler) StreamMe(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	return stream(c, h.userUC.WatchUser(c.Request().Context(), userID), h.logger)
}

// UpdateFCMToken handles PUT /users/me/fcm-token
func (h *UserHandler) UpdateFCMToken(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateFCMTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userUC.UpdateFCMToken(c.Request().Context(), userID, req.FCMToken); err != nil {
		return err
	}

	return response.OK(c, nil, "Push token updated")
}

// SetLocationSharing handles PUT /users/me/location-sharing
func (h *UserHandler) SetLocationSharing(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req LocationSharingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.userUC.SetLocationSharing(c.Request().Context(), userID, *req.Enabled); err != nil {
		return err
	}

	message := "Location sharing disabled"
	if *req.Enabled {
		message = "Location sharing enabled"
	}

	return response.OK(c, map[string]bool{"enabled": *req.Enabled}, message)
}

// Search handles GET /users/search?email=
func (h *UserHandler) Search(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	users, err := h.userUC.SearchByEmailPrefix(c.Request().Context(), userID, c.QueryParam("email"))
	if err != nil {
		return err
	}

	return response.OK(c, users, "")
}
