package usecase

import (
	"context"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
)

// MaxUserSearchResults bounds SearchByEmailPrefix.
const MaxUserSearchResults = 20

// ProfileInput is the profile data a client writes after signing in.
type ProfileInput struct {
	// Email is what the client claims. Optional, but it must match VerifiedEmail.
	Email             string
	// VerifiedEmail comes from the identity token and is the one stored.
	VerifiedEmail     string
	DisplayName       string
	ProfilePictureURL string
	FCMToken          string
}

// UserUsecase defines the account and settings operations.
type UserUsecase interface {
	// UpsertProfile creates or refreshes the caller's user document under the verified email.
	UpsertProfile(ctx context.Context, userID string, input *ProfileInput) (*entity.User, error)

	// GetUser returns a user document.
	GetUser(ctx context.Context, userID string) (*entity.User, error)

	// SearchByEmailPrefix finds other users whose email starts with prefix.
	SearchByEmailPrefix(ctx context.Context, currentUserID, prefix string) ([]*entity.User, error)

	// UpdateFCMToken replaces the caller's push token.
	UpdateFCMToken(ctx context.Context, userID, token string) error

	// SetLocationSharing toggles sharing. Turning it off also removes the live location.
	SetLocationSharing(ctx context.Context, userID string, enabled bool) error

	// WatchUser streams the caller's user document.
	WatchUser(ctx context.Context, userID string) *repository.Subscription[*entity.User]
}
