// Package persistence selects the document store driver and provides the repositories.
package persistence

import (
	"context"
	"log/slog"

	"friendlocator/config"
	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/infra/persistence/firestore"
	"friendlocator/internal/infra/persistence/memory"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for NewRepositories, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	App    *firebase.App `optional:"true"`
	Logger *slog.Logger
}

// Repositories is the set of repositories backed by one store.
type Repositories struct {
	fx.Out

	Users          repository.UserRepository
	FriendRequests repository.FriendRequestRepository
	Friendships    repository.FriendshipRepository
	Locations      repository.LocationRepository
	Alerts         repository.AlertRepository
	TxManager      repository.TransactionManager
}

// NewRepositories builds the repositories of the configured store driver.
func NewRepositories(params Params) (Repositories, error) {
	switch params.Config.Store.Driver {
	case constants.StoreDriverMemory:
		params.Logger.Warn("Using in-memory document store, data is lost on restart")

		return memoryRepositories(memory.NewStore()), nil

	case constants.StoreDriverFirestore:
		client, err := firestore.NewClient(firestore.ClientParams{
			Lc:     params.Lc,
			Ctx:    params.Ctx,
			App:    params.App,
			Logger: params.Logger,
		})
		if err != nil {
			return Repositories{}, err
		}
		params.Logger.Info("Using Firestore document store")

		return Repositories{
			Users:          firestore.NewUserRepository(client),
			FriendRequests: firestore.NewFriendRequestRepository(client),
			Friendships:    firestore.NewFriendshipRepository(client),
			Locations:      firestore.NewLocationRepository(client),
			Alerts:         firestore.NewAlertRepository(client),
			TxManager:      firestore.NewTransactionManager(client),
		}, nil

	default:
		return Repositories{}, errors.Errorf("unknown store driver: %s", params.Config.Store.Driver)
	}
}

func memoryRepositories(store *memory.Store) Repositories {
	return Repositories{
		Users:          memory.NewUserRepository(store),
		FriendRequests: memory.NewFriendRequestRepository(store),
		Friendships:    memory.NewFriendshipRepository(store),
		Locations:      memory.NewLocationRepository(store),
		Alerts:         memory.NewAlertRepository(store),
		TxManager:      memory.NewTransactionManager(store),
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRepositories),
)
