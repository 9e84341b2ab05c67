// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"friendlocator/internal/delivery/http/middleware"
	"friendlocator/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserHandler          *handler.UserHandler
	FriendRequestHandler *handler.FriendRequestHandler
	FriendHandler        *handler.FriendHandler
	LocationHandler      *handler.LocationHandler
	AlertHandler         *handler.AlertHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler          *handler.UserHandler
	friendRequestHandler *handler.FriendRequestHandler
	friendHandler        *handler.FriendHandler
	locationHandler      *handler.LocationHandler
	alertHandler         *handler.AlertHandler
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:          params.UserHandler,
		friendRequestHandler: params.FriendRequestHandler,
		friendHandler:        params.FriendHandler,
		locationHandler:      params.LocationHandler,
		alertHandler:         params.AlertHandler,
		authMiddleware:       params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Everything else requires a verified ID token
	users := e.Group("/users", r.authMiddleware.Authenticate)
	{
		users.PUT("/me", r.userHandler.UpsertProfile)
		users.GET("/me", r.userHandler.GetMe)
		users.GET("/me/stream", r.userHandler.StreamMe)
		users.PUT("/me/fcm-token", r.userHandler.UpdateFCMToken)
		users.PUT("/me/location-sharing", r.userHandler.SetLocationSharing)
		users.GET("/search", r.userHandler.Search)
	}

	requests := e.Group("/friend-requests", r.authMiddleware.Authenticate)
	{
		requests.POST("", r.friendRequestHandler.Send)
		requests.POST("/:id/accept", r.friendRequestHandler.Accept)
		requests.POST("/:id/decline", r.friendRequestHandler.Decline)
		requests.GET("/pending/stream", r.friendRequestHandler.StreamPending)
		requests.GET("/sent/stream", r.friendRequestHandler.StreamSent)
	}

	friends := e.Group("/friends", r.authMiddleware.Authenticate)
	{
		friends.GET("/stream", r.friendHandler.Stream)
		friends.GET("/ids", r.friendHandler.ListIDs)
		friends.DELETE("/:friendId", r.friendHandler.Remove)
	}

	locations := e.Group("/locations", r.authMiddleware.Authenticate)
	{
		locations.PUT("/me", r.locationHandler.UpdateMine)
		locations.DELETE("/me", r.locationHandler.DeleteMine)
		locations.GET("/friends", r.locationHandler.Friends)
		locations.GET("/friends/stream", r.locationHandler.StreamFriends)
		locations.GET("/:userId", r.locationHandler.Get)
	}

	alerts := e.Group("/alerts", r.authMiddleware.Authenticate)
	{
		alerts.POST("", r.alertHandler.Send)
		alerts.GET("/stream", r.alertHandler.Stream)
		alerts.GET("/unread/stream", r.alertHandler.StreamUnread)
		alerts.POST("/:id/read", r.alertHandler.MarkRead)
		alerts.DELETE("/:id", r.alertHandler.Delete)
	}
}
