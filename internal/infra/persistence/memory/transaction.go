package memory

import (
	"context"

	"friendlocator/internal/domain/repository"

	"github.com/pkg/errors"
)

var errReadAfterWrite = errors.New("transaction reads must be executed before all writes")

// transaction stages writes and applies them together on commit.
type transaction struct {
	staged []func()
}

func (t *transaction) stage(mutate func()) {
	t.staged = append(t.staged, mutate)
}

func (t *transaction) checkRead() error {
	if t != nil && len(t.staged) > 0 {
		return errReadAfterWrite
	}

	return nil
}

// base is embedded by every repository. A nil tx means writes are applied directly.
type base struct {
	store *Store
	tx    *transaction
}

func (b base) apply(mutate func()) {
	if b.tx != nil {
		b.tx.stage(mutate)

		return
	}
	b.store.write(mutate)
}

func (b base) checkRead() error {
	return b.tx.checkRead()
}

type transactionManager struct {
	store *Store
}

type repositoryFactory struct {
	base
}

// NewTransactionManager creates a TransactionManager over store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (f *repositoryFactory) NewUserRepository() repository.UserReader {
	return &userRepository{base: f.base}
}

func (f *repositoryFactory) NewFriendRequestRepository() repository.FriendRequestTxRepository {
	return &friendRequestRepository{base: f.base}
}

func (f *repositoryFactory) NewFriendshipRepository() repository.FriendshipTxRepository {
	return &friendshipRepository{base: f.base}
}

func (f *repositoryFactory) NewLocationRepository() repository.LocationTxRepository {
	return &locationRepository{base: f.base}
}

// Execute runs fn and commits its staged writes only when fn succeeds.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	tx := &transaction{}
	if err := fn(&repositoryFactory{base: base{store: tm.store, tx: tx}}); err != nil {
		return err
	}

	if len(tx.staged) == 0 {
		return nil
	}

	tm.store.write(func() {
		for _, mutate := range tx.staged {
			mutate()
		}
	})

	return nil
}
