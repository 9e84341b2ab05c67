package firestore

import (
	"context"

	"friendlocator/internal/domain/repository"

	fs "cloud.google.com/go/firestore"
)

// firestoreTransactionManager implements the domain's TransactionManager with Firestore
// transactions. Firestore retries the function on contention, so fn must not have
// side effects outside the store.
type firestoreTransactionManager struct {
	client *fs.Client
}

// firestoreRepositoryFactory hands out repositories bound to one *fs.Transaction.
type firestoreRepositoryFactory struct {
	base
}

// NewTransactionManager is the constructor for firestoreTransactionManager.
func NewTransactionManager(client *fs.Client) repository.TransactionManager {
	return &firestoreTransactionManager{client: client}
}

func (f *firestoreRepositoryFactory) NewUserRepository() repository.UserReader {
	return &userRepository{base: f.base}
}

func (f *firestoreRepositoryFactory) NewFriendRequestRepository() repository.FriendRequestTxRepository {
	return &friendRequestRepository{base: f.base}
}

func (f *firestoreRepositoryFactory) NewFriendshipRepository() repository.FriendshipTxRepository {
	return &friendshipRepository{base: f.base}
}

func (f *firestoreRepositoryFactory) NewLocationRepository() repository.LocationTxRepository {
	return &locationRepository{base: f.base}
}

// Execute runs fn in a Firestore transaction. Writes are committed only if fn returns nil.
func (tm *firestoreTransactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	return tm.client.RunTransaction(ctx, func(_ context.Context, tx *fs.Transaction) error {
		return fn(&firestoreRepositoryFactory{base: base{client: tm.client, tx: tx}})
	})
}
