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

type friendRequestRepository struct {
	base
}

// NewFriendRequestRepository is the constructor for friendRequestRepository.
func NewFriendRequestRepository(client *fs.Client) repository.FriendRequestRepository {
	return &friendRequestRepository{base: base{client: client}}
}

func (r *friendRequestRepository) requests() *fs.CollectionRef {
	return r.client.Collection(constants.CollectionFriendRequests)
}

func (r *friendRequestRepository) CreateFriendRequest(ctx context.Context, request *entity.FriendRequest) error {
	ref := r.requests().NewDoc()
	if err := r.create(ctx, ref, model.FromFriendRequestDomain(request)); err != nil {
		return errors.Wrap(err, "failed to create friend request")
	}
	request.ID = ref.ID

	return nil
}

func (r *friendRequestRepository) FindFriendRequestByID(ctx context.Context, id string) (*entity.FriendRequest, error) {
	doc, err := r.get(ctx, r.requests().Doc(id))
	if err != nil {
		if isNotFound(err) {
			return nil, errors.WithStack(repository.ErrFriendRequestNotFound)
		}

		return nil, errors.Wrap(err, "failed to find friend request")
	}

	var m model.FriendRequestModel
	if err := doc.DataTo(&m); err != nil {
		return nil, errors.Wrap(err, "failed to decode friend request")
	}

	return model.ToFriendRequestDomain(doc.Ref.ID, &m), nil
}

func (r *friendRequestRepository) UpdateFriendRequestStatus(ctx context.Context, id string, status entity.FriendRequestStatus, updatedAt time.Time) error {
	err := r.update(ctx, r.requests().Doc(id), []fs.Update{
		{Path: "status", Value: string(status)},
		{Path: "updated_at", Value: updatedAt},
	})
	if isNotFound(err) {
		return errors.WithStack(repository.ErrFriendRequestNotFound)
	}

	return errors.Wrap(err, "failed to update friend request status")
}

func (r *friendRequestRepository) HasPendingFriendRequest(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	docs, err := r.documents(ctx, r.requests().
		Where("from_user_id", "==", fromUserID).
		Where("to_user_id", "==", toUserID).
		Where("status", "==", string(entity.FriendRequestPending)).
		Limit(1))
	if err != nil {
		return false, errors.Wrap(err, "failed to query pending friend requests")
	}

	return len(docs) > 0, nil
}

func (r *friendRequestRepository) WatchPendingReceived(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	return r.watchPending(ctx, "to_user_id", userID)
}

func (r *friendRequestRepository) WatchPendingSent(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	return r.watchPending(ctx, "from_user_id", userID)
}

func (r *friendRequestRepository) watchPending(ctx context.Context, field, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	q := r.requests().
		Where(field, "==", userID).
		Where("status", "==", string(entity.FriendRequestPending)).
		OrderBy("created_at", fs.Desc)

	return watchQuery(ctx, q, func(qs *fs.QuerySnapshot) ([]*entity.FriendRequest, error) {
		docs, err := queryDocs(qs)
		if err != nil {
			return nil, err
		}

		return decodeAll(docs, model.ToFriendRequestDomain)
	})
}
