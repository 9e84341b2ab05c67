package repository

import (
	"context"

	"friendlocator/internal/domain/entity"
)

// FriendshipTxRepository holds the friendship operations usable inside a transaction.
type FriendshipTxRepository interface {
	// CreateFriendship persists one direction of a friendship and assigns its ID.
	CreateFriendship(ctx context.Context, friendship *entity.Friendship) error

	// FindFriendships returns every document with the given (user_id, friend_id) direction.
	FindFriendships(ctx context.Context, userID, friendID string) ([]*entity.Friendship, error)

	// DeleteFriendship removes a friendship document by its ID.
	DeleteFriendship(ctx context.Context, id string) error
}

// FriendshipRepository defines persistence for the directional friendship documents.
type FriendshipRepository interface {
	FriendshipTxRepository

	// AreFriends reports whether the (userID, friendID) direction exists.
	AreFriends(ctx context.Context, userID, friendID string) (bool, error)

	// ListFriendIDs returns the ids of every friend of userID.
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)

	// WatchFriends streams the friendships owned by userID, newest first.
	WatchFriends(ctx context.Context, userID string) *Subscription[[]*entity.Friendship]
}
