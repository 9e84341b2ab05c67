package firestore

import (
	"context"

	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/infra/persistence/model"

	fs "cloud.google.com/go/firestore"
	"github.com/pkg/errors"
)

type friendshipRepository struct {
	base
}

// NewFriendshipRepository is the constructor for friendshipRepository.
func NewFriendshipRepository(client *fs.Client) repository.FriendshipRepository {
	return &friendshipRepository{base: base{client: client}}
}

func (r *friendshipRepository) friendships() *fs.CollectionRef {
	return r.client.Collection(constants.CollectionFriendships)
}

func (r *friendshipRepository) CreateFriendship(ctx context.Context, friendship *entity.Friendship) error {
	ref := r.friendships().NewDoc()
	if err := r.create(ctx, ref, model.FromFriendshipDomain(friendship)); err != nil {
		return errors.Wrap(err, "failed to create friendship")
	}
	friendship.ID = ref.ID

	return nil
}

func (r *friendshipRepository) FindFriendships(ctx context.Context, userID, friendID string) ([]*entity.Friendship, error) {
	docs, err := r.documents(ctx, r.friendships().
		Where("user_id", "==", userID).
		Where("friend_id", "==", friendID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to query friendships")
	}

	return decodeAll(docs, model.ToFriendshipDomain)
}

func (r *friendshipRepository) DeleteFriendship(ctx context.Context, id string) error {
	return errors.Wrap(r.delete(ctx, r.friendships().Doc(id)), "failed to delete friendship")
}

func (r *friendshipRepository) AreFriends(ctx context.Context, userID, friendID string) (bool, error) {
	docs, err := r.documents(ctx, r.friendships().
		Where("user_id", "==", userID).
		Where("friend_id", "==", friendID).
		Limit(1))
	if err != nil {
		return false, errors.Wrap(err, "failed to query friendship")
	}

	return len(docs) > 0, nil
}

func (r *friendshipRepository) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	docs, err := r.documents(ctx, r.friendships().Where("user_id", "==", userID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list friends")
	}

	friendships, err := decodeAll(docs, model.ToFriendshipDomain)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		ids = append(ids, f.FriendID)
	}

	return ids, nil
}

func (r *friendshipRepository) WatchFriends(ctx context.Context, userID string) *repository.Subscription[[]*entity.Friendship] {
	q := r.friendships().
		Where("user_id", "==", userID).
		OrderBy("created_at", fs.Desc)

	return watchQuery(ctx, q, func(qs *fs.QuerySnapshot) ([]*entity.Friendship, error) {
		docs, err := queryDocs(qs)
		if err != nil {
			return nil, err
		}

		return decodeAll(docs, model.ToFriendshipDomain)
	})
}
