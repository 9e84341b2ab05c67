package usecase

import (
	"context"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
)

// LocationInput is one location sample reported by a device.
type LocationInput struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Altitude  float64
	Speed     float64
	Bearing   float64
}

// LocationUsecase defines live location sharing between friends.
type LocationUsecase interface {
	// UpdateLocation upserts the caller's live location.
	UpdateLocation(ctx context.Context, userID string, input *LocationInput) (*entity.UserLocation, error)

	// GetLocation returns the location of userID as seen by viewerID, who must be the
	// same user or a friend.
	GetLocation(ctx context.Context, viewerID, userID string) (*entity.UserLocation, error)

	// DeleteLocation removes the caller's live location.
	DeleteLocation(ctx context.Context, userID string) error

	// FriendLocations returns the live locations of every friend with their distance
	// from the caller.
	FriendLocations(ctx context.Context, userID string) ([]*entity.FriendLocation, error)

	// WatchFriendLocations streams FriendLocations. The friend set is resolved once when
	// the stream opens.
	WatchFriendLocations(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendLocation]
}
