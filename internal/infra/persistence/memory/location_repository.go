package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"

	"github.com/pkg/errors"
)

type locationRepository struct {
	base
}

// NewLocationRepository creates a LocationRepository over store.
func NewLocationRepository(store *Store) repository.LocationRepository {
	return &locationRepository{base: base{store: store}}
}

func (r *locationRepository) UpsertLocation(_ context.Context, location *entity.UserLocation) error {
	if err := r.store.checkFailure(OpUpsertLocation); err != nil {
		return err
	}

	location.ID = location.UserID
	doc := *location
	doc.ID = ""
	r.apply(func() { r.store.locations[location.UserID] = doc })

	return nil
}

func (r *locationRepository) FindLocationByUserID(_ context.Context, userID string) (*entity.UserLocation, error) {
	if err := r.store.checkFailure(OpQueryLocations); err != nil {
		return nil, err
	}

	var location entity.UserLocation
	var ok bool
	r.store.read(func() { location, ok = r.store.locations[userID] })
	if !ok {
		return nil, errors.WithStack(repository.ErrLocationNotFound)
	}
	location.ID = userID

	return &location, nil
}

func (r *locationRepository) FindLocationsByUserIDs(_ context.Context, userIDs []string) ([]*entity.UserLocation, error) {
	if len(userIDs) > repository.MaxLocationQueryIDs {
		return nil, errors.Errorf("at most %d user ids per query, got %d", repository.MaxLocationQueryIDs, len(userIDs))
	}
	if err := r.store.checkFailure(OpQueryLocations); err != nil {
		return nil, err
	}

	var locations []*entity.UserLocation
	r.store.read(func() { locations = r.byUserIDs(userIDs) })

	return locations, nil
}

func (r *locationRepository) FindLocationsUpdatedBefore(_ context.Context, cutoff time.Time, limit int) ([]*entity.UserLocation, error) {
	if err := r.checkRead(); err != nil {
		return nil, err
	}
	if err := r.store.checkFailure(OpQueryLocations); err != nil {
		return nil, err
	}

	locations := make([]*entity.UserLocation, 0)
	r.store.read(func() {
		for id, location := range r.store.locations {
			if location.UpdatedAt.Before(cutoff) {
				location.ID = id
				locations = append(locations, &location)
			}
		}
	})

	sort.Slice(locations, func(i, j int) bool {
		if !locations[i].UpdatedAt.Equal(locations[j].UpdatedAt) {
			return locations[i].UpdatedAt.Before(locations[j].UpdatedAt)
		}

		return locations[i].ID < locations[j].ID
	})
	if limit > 0 && len(locations) > limit {
		locations = locations[:limit]
	}

	return locations, nil
}

func (r *locationRepository) DeleteLocation(_ context.Context, userID string) error {
	if err := r.store.checkFailure(OpDeleteLocation); err != nil {
		return err
	}

	r.apply(func() { delete(r.store.locations, userID) })

	return nil
}

func (r *locationRepository) WatchLocations(ctx context.Context, userIDs []string) *repository.Subscription[[]*entity.UserLocation] {
	if len(userIDs) > repository.MaxLocationQueryIDs {
		return repository.FailedSubscription[[]*entity.UserLocation](ctx,
			errors.Errorf("at most %d user ids per query, got %d", repository.MaxLocationQueryIDs, len(userIDs)))
	}

	ids := slices.Clone(userIDs)

	return watch(ctx, r.store, OpQueryLocations, func() []*entity.UserLocation {
		return r.byUserIDs(ids)
	})
}

// byUserIDs must be called under the read lock. Results are ordered by user id.
func (r *locationRepository) byUserIDs(userIDs []string) []*entity.UserLocation {
	locations := make([]*entity.UserLocation, 0, len(userIDs))
	for _, id := range userIDs {
		location, ok := r.store.locations[id]
		if !ok {
			continue
		}
		location.ID = id
		locations = append(locations, &location)
	}

	sort.Slice(locations, func(i, j int) bool { return locations[i].UserID < locations[j].UserID })

	return locations
}
