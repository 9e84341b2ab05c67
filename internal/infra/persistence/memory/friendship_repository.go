package memory

import (
	"context"
	"sort"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
)

type friendshipRepository struct {
	base
}

// NewFriendshipRepository creates a FriendshipRepository over store.
func NewFriendshipRepository(store *Store) repository.FriendshipRepository {
	return &friendshipRepository{base: base{store: store}}
}

func (r *friendshipRepository) CreateFriendship(_ context.Context, friendship *entity.Friendship) error {
	if err := r.store.checkFailure(OpCreateFriendship); err != nil {
		return err
	}

	friendship.ID = newID()
	doc := *friendship
	doc.ID = ""
	r.apply(func() { r.store.friendships[friendship.ID] = doc })

	return nil
}

func (r *friendshipRepository) FindFriendships(_ context.Context, userID, friendID string) ([]*entity.Friendship, error) {
	if err := r.checkRead(); err != nil {
		return nil, err
	}
	if err := r.store.checkFailure(OpQueryFriendships); err != nil {
		return nil, err
	}

	var found []*entity.Friendship
	r.store.read(func() {
		found = r.filter(func(f entity.Friendship) bool { return f.UserID == userID && f.FriendID == friendID })
	})

	return found, nil
}

func (r *friendshipRepository) DeleteFriendship(_ context.Context, id string) error {
	if err := r.store.checkFailure(OpDeleteFriendship); err != nil {
		return err
	}

	r.apply(func() { delete(r.store.friendships, id) })

	return nil
}

func (r *friendshipRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	found, err := r.FindFriendships(ctx, userID, friendID)
	if err != nil {
		return false, err
	}

	return len(found) > 0, nil
}

func (r *friendshipRepository) ListFriendIDs(_ context.Context, userID string) ([]string, error) {
	if err := r.store.checkFailure(OpQueryFriendships); err != nil {
		return nil, err
	}

	var friendships []*entity.Friendship
	r.store.read(func() {
		friendships = r.filter(func(f entity.Friendship) bool { return f.UserID == userID })
	})

	ids := make([]string, 0, len(friendships))
	for _, friendship := range friendships {
		ids = append(ids, friendship.FriendID)
	}

	return ids, nil
}

func (r *friendshipRepository) WatchFriends(ctx context.Context, userID string) *repository.Subscription[[]*entity.Friendship] {
	return watch(ctx, r.store, OpQueryFriendships, func() []*entity.Friendship {
		return r.filter(func(f entity.Friendship) bool { return f.UserID == userID })
	})
}

// filter must be called under the read lock. Results are newest first.
func (r *friendshipRepository) filter(match func(entity.Friendship) bool) []*entity.Friendship {
	friendships := make([]*entity.Friendship, 0)
	for id, friendship := range r.store.friendships {
		if !match(friendship) {
			continue
		}
		friendship.ID = id
		friendships = append(friendships, &friendship)
	}

	sort.Slice(friendships, func(i, j int) bool {
		return friendships[i].CreatedAt.After(friendships[j].CreatedAt)
	})

	return friendships
}
