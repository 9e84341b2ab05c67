package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"

	"github.com/pkg/errors"
)

type userRepository struct {
	base
}

// NewUserRepository creates a UserRepository over store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{base: base{store: store}}
}

func userWithID(id string, user entity.User) *entity.User {
	user.ID = id

	return &user
}

func (r *userRepository) FindUserByID(_ context.Context, id string) (*entity.User, error) {
	if err := r.checkRead(); err != nil {
		return nil, err
	}
	if err := r.store.checkFailure(OpFindUser); err != nil {
		return nil, err
	}

	var user entity.User
	var ok bool
	r.store.read(func() { user, ok = r.store.users[id] })
	if !ok {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}

	return userWithID(id, user), nil
}

func (r *userRepository) FindUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if err := r.store.checkFailure(OpFindUser); err != nil {
		return nil, err
	}

	var found *entity.User
	r.store.read(func() {
		for _, id := range sortedKeys(r.store.users) {
			if user := r.store.users[id]; user.Email == email {
				found = userWithID(id, user)

				return
			}
		}
	})
	if found == nil {
		return nil, errors.WithStack(repository.ErrUserNotFound)
	}

	return found, nil
}

func (r *userRepository) SearchUsersByEmailPrefix(_ context.Context, prefix string, limit int) ([]*entity.User, error) {
	if err := r.store.checkFailure(OpFindUser); err != nil {
		return nil, err
	}

	users := make([]*entity.User, 0)
	r.store.read(func() {
		for id, user := range r.store.users {
			if strings.HasPrefix(user.Email, prefix) {
				users = append(users, userWithID(id, user))
			}
		}
	})

	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	return users, nil
}

func (r *userRepository) UpsertUser(_ context.Context, user *entity.User) error {
	if err := r.store.checkFailure(OpUpsertUser); err != nil {
		return err
	}

	doc := *user
	doc.ID = ""
	r.apply(func() { r.store.users[user.ID] = doc })

	return nil
}

func (r *userRepository) update(id string, mutate func(*entity.User)) error {
	if err := r.store.checkFailure(OpUpdateUser); err != nil {
		return err
	}

	var exists bool
	r.store.read(func() { _, exists = r.store.users[id] })
	if !exists {
		return errors.WithStack(repository.ErrUserNotFound)
	}

	r.apply(func() {
		user, ok := r.store.users[id]
		if !ok {
			return
		}
		mutate(&user)
		r.store.users[id] = user
	})

	return nil
}

func (r *userRepository) UpdateFCMToken(_ context.Context, id, token string) error {
	return r.update(id, func(u *entity.User) { u.FCMToken = token })
}

func (r *userRepository) UpdateLastActive(_ context.Context, id string, at time.Time) error {
	return r.update(id, func(u *entity.User) { u.LastActive = at })
}

func (r *userRepository) UpdateLocationSharing(_ context.Context, id string, enabled bool) error {
	return r.update(id, func(u *entity.User) { u.LocationSharingEnabled = enabled })
}

func (r *userRepository) WatchUser(ctx context.Context, id string) *repository.Subscription[*entity.User] {
	return watch(ctx, r.store, OpFindUser, func() *entity.User {
		user, ok := r.store.users[id]
		if !ok {
			return nil
		}

		return userWithID(id, user)
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
