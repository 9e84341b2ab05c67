package repository

import (
	"context"
	"time"

	"friendlocator/internal/domain/entity"

	"github.com/pkg/errors"
)

// MaxLocationQueryIDs is the largest id list a single membership query accepts.
const MaxLocationQueryIDs = 30

// ErrLocationNotFound is returned when a user has no live location document.
var ErrLocationNotFound = errors.New("location not found")

// LocationTxRepository holds the location operations usable inside a transaction.
type LocationTxRepository interface {
	// FindLocationsUpdatedBefore returns up to limit locations with updated_at strictly
	// before cutoff, oldest first. A limit of zero or less returns all of them.
	FindLocationsUpdatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.UserLocation, error)

	// DeleteLocation removes the location document of userID. Missing documents are not an error.
	DeleteLocation(ctx context.Context, userID string) error
}

// LocationRepository defines persistence for live location documents.
type LocationRepository interface {
	LocationTxRepository

	// UpsertLocation writes the location document keyed by its user id.
	UpsertLocation(ctx context.Context, location *entity.UserLocation) error

	// FindLocationByUserID retrieves the live location of a user.
	FindLocationByUserID(ctx context.Context, userID string) (*entity.UserLocation, error)

	// FindLocationsByUserIDs retrieves the locations of up to MaxLocationQueryIDs users.
	FindLocationsByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserLocation, error)

	// WatchLocations streams the locations of up to MaxLocationQueryIDs users.
	WatchLocations(ctx context.Context, userIDs []string) *Subscription[[]*entity.UserLocation]
}
