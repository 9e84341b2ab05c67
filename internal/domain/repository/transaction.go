package repository

import "context"

// TransactionManager defines the interface for running several store operations as one
// atomic unit. This allows the use case layer to group writes without depending on a
// specific store driver.
type TransactionManager interface {
	// Execute runs fn within a single atomic unit of work.
	// If fn returns an error nothing is written. Otherwise every write is committed together.
	// Reads issued through the factory observe the state before any write of the same unit,
	// so callers must perform all reads before their writes.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances that are bound to a specific transaction.
type RepositoryFactory interface {
	// NewUserRepository returns a UserReader bound to the current transaction.
	NewUserRepository() UserReader

	// NewFriendRequestRepository returns a FriendRequestTxRepository bound to the current transaction.
	NewFriendRequestRepository() FriendRequestTxRepository

	// NewFriendshipRepository returns a FriendshipTxRepository bound to the current transaction.
	NewFriendshipRepository() FriendshipTxRepository

	// NewLocationRepository returns a LocationTxRepository bound to the current transaction.
	NewLocationRepository() LocationTxRepository
}
