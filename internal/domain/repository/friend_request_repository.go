package repository

import (
	"context"
	"time"

	"friendlocator/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrFriendRequestNotFound is returned when a friend request document does not exist.
var ErrFriendRequestNotFound = errors.New("friend request not found")

// FriendRequestTxRepository holds the friend request operations usable inside a transaction.
type FriendRequestTxRepository interface {
	// FindFriendRequestByID retrieves a friend request by its document id.
	FindFriendRequestByID(ctx context.Context, id string) (*entity.FriendRequest, error)

	// UpdateFriendRequestStatus sets status and updated_at of a request.
	UpdateFriendRequestStatus(ctx context.Context, id string, status entity.FriendRequestStatus, updatedAt time.Time) error
}

// FriendRequestRepository defines persistence for friend requests.
type FriendRequestRepository interface {
	FriendRequestTxRepository

	// CreateFriendRequest persists a new request and assigns its ID.
	CreateFriendRequest(ctx context.Context, request *entity.FriendRequest) error

	// HasPendingFriendRequest reports whether a PENDING request from -> to exists.
	HasPendingFriendRequest(ctx context.Context, fromUserID, toUserID string) (bool, error)

	// WatchPendingReceived streams PENDING requests addressed to userID, newest first.
	WatchPendingReceived(ctx context.Context, userID string) *Subscription[[]*entity.FriendRequest]

	// WatchPendingSent streams PENDING requests sent by userID, newest first.
	WatchPendingSent(ctx context.Context, userID string) *Subscription[[]*entity.FriendRequest]
}
