// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
)

// FriendshipUsecase owns the friend request state machine and the two-document
// friendship relation. It is the only component that creates or deletes friend
// requests and friendships.
type FriendshipUsecase interface {
	// SendFriendRequest creates a PENDING request from currentUserID to the user owning toEmail.
	SendFriendRequest(ctx context.Context, currentUserID, toEmail string) (*entity.FriendRequest, error)

	// AcceptFriendRequest accepts a request addressed to currentUserID and creates both
	// friendship documents atomically. It returns the recipient's view of the friendship.
	AcceptFriendRequest(ctx context.Context, currentUserID, requestID string) (*entity.Friendship, error)

	// DeclineFriendRequest declines a request addressed to currentUserID.
	DeclineFriendRequest(ctx context.Context, currentUserID, requestID string) error

	// RemoveFriend deletes both directions of a friendship atomically.
	RemoveFriend(ctx context.Context, currentUserID, friendID string) error

	// WatchPendingRequests streams the PENDING requests received by userID, newest first.
	WatchPendingRequests(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest]

	// WatchSentRequests streams the PENDING requests sent by userID, newest first.
	WatchSentRequests(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest]

	// WatchFriends streams the friends of userID, newest first.
	WatchFriends(ctx context.Context, userID string) *repository.Subscription[[]*entity.Friendship]

	// ListFriendIDs returns the ids of every friend of userID.
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}
