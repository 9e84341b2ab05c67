// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"friendlocator/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserReader is the read side of user persistence that is also available inside a transaction.
type UserReader interface {
	// FindUserByID retrieves a single user by their unique ID.
	FindUserByID(ctx context.Context, id string) (*entity.User, error)
}

// UserRepository defines the standard operations for user persistence.
type UserRepository interface {
	UserReader

	// FindUserByEmail retrieves the first user whose normalized email matches.
	FindUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// SearchUsersByEmailPrefix returns up to limit users whose email starts with prefix.
	SearchUsersByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*entity.User, error)

	// UpsertUser writes the whole user document, creating it if missing.
	UpsertUser(ctx context.Context, user *entity.User) error

	// UpdateFCMToken replaces the push token of a user.
	UpdateFCMToken(ctx context.Context, id, token string) error

	// UpdateLastActive sets the last_active timestamp of a user.
	UpdateLastActive(ctx context.Context, id string, at time.Time) error

	// UpdateLocationSharing toggles the location_sharing_enabled flag.
	UpdateLocationSharing(ctx context.Context, id string, enabled bool) error

	// WatchUser streams the user document on every change.
	WatchUser(ctx context.Context, id string) *Subscription[*entity.User]
}
