package impl

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// locationService implements the LocationUsecase interface.
type locationService struct {
	userRepo     repository.UserRepository
	friendRepo   repository.FriendshipRepository
	locationRepo repository.LocationRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// LocationServiceParams holds dependencies for LocationService, injected by Fx.
type LocationServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	FriendRepo   repository.FriendshipRepository
	LocationRepo repository.LocationRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewLocationService is the constructor for locationService.
func NewLocationService(params LocationServiceParams) usecase.LocationUsecase {
	return &locationService{
		userRepo:     params.UserRepo,
		friendRepo:   params.FriendRepo,
		locationRepo: params.LocationRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *locationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpdateLocation upserts the caller's single location document.
func (srv *locationService) UpdateLocation(ctx context.Context, userID string, input *usecase.LocationInput) (*entity.UserLocation, error) {
	user, err := srv.userRepo.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read user")
	}
	if !user.LocationSharingEnabled {
		return nil, domainerrors.ErrLocationSharingDisabled
	}

	previous, err := srv.locationRepo.FindLocationByUserID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrLocationNotFound) {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read location")
	}

	location := &entity.UserLocation{
		UserID:    userID,
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
		Accuracy:  input.Accuracy,
		Altitude:  input.Altitude,
		Speed:     input.Speed,
		Bearing:   input.Bearing,
		UpdatedAt: srv.now().UTC(),
	}
	if err := srv.locationRepo.UpsertLocation(ctx, location); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to upsert location")
	}

	kind := service.DocumentCreated
	if previous != nil {
		kind = service.DocumentUpdated
	}
	srv.log(ctx).Debug("Location updated", slog.String("userID", userID), slog.String("kind", string(kind)))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionLocations, userID, kind, previous, location)

	return location, nil
}

// GetLocation returns a location to its owner or to a friend of the owner.
func (srv *locationService) GetLocation(ctx context.Context, viewerID, userID string) (*entity.UserLocation, error) {
	if viewerID != userID {
		friends, err := srv.friendRepo.AreFriends(ctx, viewerID, userID)
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to check friendship")
		}
		if !friends {
			return nil, domainerrors.ErrNotFriends
		}
	}

	location, err := srv.locationRepo.FindLocationByUserID(ctx, userID)
	if errors.Is(err, repository.ErrLocationNotFound) {
		return nil, domainerrors.ErrLocationNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read location")
	}

	return location, nil
}

func (srv *locationService) DeleteLocation(ctx context.Context, userID string) error {
	if err := srv.locationRepo.DeleteLocation(ctx, userID); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete location")
	}

	srv.log(ctx).Info("Location deleted", slog.String("userID", userID))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionLocations, userID,
		service.DocumentDeleted, nil, nil)

	return nil
}

// FriendLocations reads the locations of every friend, chunked to the store's
// membership query limit.
func (srv *locationService) FriendLocations(ctx context.Context, userID string) ([]*entity.FriendLocation, error) {
	friendIDs, err := srv.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list friend ids")
	}

	var locations []*entity.UserLocation
	for _, ids := range chunkIDs(append([]string{userID}, friendIDs...)) {
		found, err := srv.locationRepo.FindLocationsByUserIDs(ctx, ids)
		if err != nil {
			return nil, domainerrors.NewDatabaseExecuteError(err, "failed to query locations")
		}
		locations = append(locations, found...)
	}

	return srv.withDistances(userID, locations), nil
}

// WatchFriendLocations merges one live query per id chunk. The friend set is read once;
// a new friendship shows up after the stream is reopened.
func (srv *locationService) WatchFriendLocations(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendLocation] {
	return repository.NewSubscription(ctx, func(ctx context.Context, emit repository.EmitFunc[[]*entity.FriendLocation]) error {
		friendIDs, err := srv.friendRepo.ListFriendIDs(ctx, userID)
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to list friend ids")
		}

		chunks := chunkIDs(append([]string{userID}, friendIDs...))
		type chunkUpdate struct {
			index     int
			locations []*entity.UserLocation
		}

		ctx, cancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		subs := make([]*repository.Subscription[[]*entity.UserLocation], len(chunks))
		updates := make(chan chunkUpdate)
		failed := make(chan error, len(chunks))

		defer wg.Wait()
		defer func() {
			for _, sub := range subs {
				sub.Close()
			}
		}()
		defer cancel()

		for i, ids := range chunks {
			subs[i] = srv.locationRepo.WatchLocations(ctx, ids)
			wg.Add(1)
			go func(index int, sub *repository.Subscription[[]*entity.UserLocation]) {
				defer wg.Done()
				for locations := range sub.Updates() {
					select {
					case updates <- chunkUpdate{index: index, locations: locations}:
					case <-ctx.Done():
						return
					}
				}
				if err := sub.Err(); err != nil {
					failed <- err
				}
			}(i, subs[i])
		}

		latest := make([][]*entity.UserLocation, len(chunks))
		received := make([]bool, len(chunks))
		waiting := len(chunks)
		for {
			select {
			case <-ctx.Done():
				return nil
			case err := <-failed:
				return domainerrors.NewDatabaseExecuteError(err, "location stream failed")
			case update := <-updates:
				latest[update.index] = update.locations
				if !received[update.index] {
					received[update.index] = true
					waiting--
				}
				if waiting > 0 {
					continue
				}
				if !emit(srv.withDistances(userID, slices.Concat(latest...))) {
					return nil
				}
			}
		}
	})
}

// withDistances drops the viewer's own and stale entries, and annotates the rest with
// the great-circle distance from the viewer when the viewer's location is known.
func (srv *locationService) withDistances(viewerID string, locations []*entity.UserLocation) []*entity.FriendLocation {
	now := srv.now()

	var origin *orb.Point
	for _, location := range locations {
		if location.UserID == viewerID && !location.IsStale(now) {
			origin = &orb.Point{location.Longitude, location.Latitude}
		}
	}

	result := make([]*entity.FriendLocation, 0, len(locations))
	for _, location := range locations {
		if location.UserID == viewerID || location.IsStale(now) {
			continue
		}

		friend := &entity.FriendLocation{UserLocation: *location}
		if origin != nil {
			distance := geo.Distance(*origin, orb.Point{location.Longitude, location.Latitude})
			friend.DistanceMeters = &distance
		}
		result = append(result, friend)
	}

	slices.SortFunc(result, func(a, b *entity.FriendLocation) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})

	return result
}

func chunkIDs(ids []string) [][]string {
	return slices.Collect(slices.Chunk(ids, repository.MaxLocationQueryIDs))
}
