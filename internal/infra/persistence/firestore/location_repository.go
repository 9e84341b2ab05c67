package firestore

import (
	"context"
	"time"

	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/infra/persistence/model"

	fs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

type locationRepository struct {
	base
}

// NewLocationRepository is the constructor for locationRepository.
func NewLocationRepository(client *fs.Client) repository.LocationRepository {
	return &locationRepository{base: base{client: client}}
}

func (r *locationRepository) locations() *fs.CollectionRef {
	return r.client.Collection(constants.CollectionLocations)
}

func (r *locationRepository) UpsertLocation(ctx context.Context, location *entity.UserLocation) error {
	location.ID = location.UserID

	return errors.Wrap(r.set(ctx, r.locations().Doc(location.UserID), model.FromLocationDomain(location)), "failed to upsert location")
}

func (r *locationRepository) FindLocationByUserID(ctx context.Context, userID string) (*entity.UserLocation, error) {
	doc, err := r.get(ctx, r.locations().Doc(userID))
	if err != nil {
		if isNotFound(err) {
			return nil, errors.WithStack(repository.ErrLocationNotFound)
		}

		return nil, errors.Wrap(err, "failed to find location")
	}

	var m model.LocationModel
	if err := doc.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode location")
	}

	return model.ToLocationDomain(doc.Ref.ID, &m), nil
}

func (r *locationRepository) byUserIDs(userIDs []string) (fs.Query, error) {
	if len(userIDs) > repository.MaxLocationQueryIDs {
		return fs.Query{}, errors.Errorf("at most %d user ids per query, got %d", repository.MaxLocationQueryIDs, len(userIDs))
	}

	return r.locations().Where("user_id", "in", userIDs), nil
}

func (r *locationRepository) FindLocationsByUserIDs(ctx context.Context, userIDs []string) ([]*entity.UserLocation, error) {
	if len(userIDs) == 0 {
		return []*entity.UserLocation{}, nil
	}

	q, err := r.byUserIDs(userIDs)
	if err != nil {
		return nil, err
	}

	docs, err := r.documents(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query locations")
	}

	return decodeAll(docs, model.ToLocationDomain)
}

func (r *locationRepository) FindLocationsUpdatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.UserLocation, error) {
	q := r.locations().Where("updated_at", "<", cutoff).OrderBy("updated_at", fs.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	docs, err := r.documents(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query stale locations")
	}

	return decodeAll(docs, model.ToLocationDomain)
}

func (r *locationRepository) DeleteLocation(ctx context.Context, userID string) error {
	return errors.Wrap(r.delete(ctx, r.locations().Doc(userID)), "failed to delete location")
}

func (r *locationRepository) WatchLocations(ctx context.Context, userIDs []string) *repository.Subscription[[]*entity.UserLocation] {
	if len(userIDs) == 0 {
		return repository.NewSubscription(ctx, func(ctx context.Context, emit repository.EmitFunc[[]*entity.UserLocation]) error {
			emit([]*entity.UserLocation{})
			<-ctx.Done()

			return nil
		})
	}

	q, err := r.byUserIDs(userIDs)
	if err != nil {
		return repository.FailedSubscription[[]*entity.UserLocation](ctx, err)
	}

	return watchQuery(ctx, q, func(qs *fs.QuerySnapshot) ([]*entity.UserLocation, error) {
		docs, err := queryDocs(qs)
		if err != nil {
			return nil, err
		}

		return decodeAll(docs, model.ToLocationDomain)
	})
}
