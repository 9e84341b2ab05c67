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

// emailPrefixEnd is the highest code point Firestore sorts, used to close prefix ranges.
const emailPrefixEnd = "\uf8ff"

type userRepository struct {
	base
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(client *fs.Client) repository.UserRepository {
	return &userRepository{base: base{client: client}}
}

func (r *userRepository) users() *fs.CollectionRef {
	return r.client.Collection(constants.CollectionUsers)
}

func (r *userRepository) FindUserByID(ctx context.Context, id string) (*entity.User, error) {
	doc, err := r.get(ctx, r.users().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, errors.WithStack(repository.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	var m model.UserModel
	if err := doc.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode user")
	}

	return model.ToUserDomain(doc.Ref.ID, &m), nil
}

func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	docs, err := r.documents(ctx, r.users().Where("email", "==", email).Limit(1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}
	if len(docs) == 0 {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}

	users, err := decodeAll(docs, model.ToUserDomain)
	if err != nil {
		return nil, err
	}

	return users[0], nil
}

func (r *userRepository) SearchUsersByEmailPrefix(ctx context.Context, prefix string, limit int) ([]*entity.User, error) {
	q := r.users().
		Where("email", ">=", prefix).
		Where("email", "<", prefix+emailPrefixEnd).
		OrderBy("email", fs.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	docs, err := r.documents(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}

	return decodeAll(docs, model.ToUserDomain)
}

func (r *userRepository) UpsertUser(ctx context.Context, user *entity.User) error {
	return errors.Wrap(r.set(ctx, r.users().Doc(user.ID), model.FromUserDomain(user)), "failed to upsert user")
}

func (r *userRepository) updateUser(ctx context.Context, id string, updates ...fs.Update) error {
	err := r.update(ctx, r.users().Doc(id), updates)
	if isNotFound(err) {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	return errors.Wrap(err, "failed to update user")
}

func (r *userRepository) UpdateFCMToken(ctx context.Context, id, token string) error {
	return r.updateUser(ctx, id, fs.Update{Path: "fcm_token", Value: token})
}

func (r *userRepository) UpdateLastActive(ctx context.Context, id string, at time.Time) error {
	return r.updateUser(ctx, id, fs.Update{Path: "last_active", Value: at})
}

func (r *userRepository) UpdateLocationSharing(ctx context.Context, id string, enabled bool) error {
	return r.updateUser(ctx, id, fs.Update{Path: "location_sharing_enabled", Value: enabled})
}

func (r *userRepository) WatchUser(ctx context.Context, id string) *repository.Subscription[*entity.User] {
	ref := r.users().Doc(id)

	return repository.NewSubscription(ctx, func(ctx context.Context, emit repository.EmitFunc[*entity.User]) error {
		it := ref.Snapshots(ctx)
		defer it.Stop()

		for {
			doc, err := it.Next()
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}

				return errors.WithStack(err)
			}

			var user *entity.User
			if doc.Exists() {
				var m model.UserModel
				if err := doc.DataTo(&m); err != nil {
					return errors.Wrap(err, "failed to decode user")
				}
				user = model.ToUserDomain(doc.Ref.ID, &m)
			}
			if !emit(user) {
				return nil
			}
		}
	})
}
