package memory

import (
	"context"
	"sort"
	"time"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"

	"github.com/pkg/errors"
)

type friendRequestRepository struct {
	base
}

// NewFriendRequestRepository creates a FriendRequestRepository over store.
func NewFriendRequestRepository(store *Store) repository.FriendRequestRepository {
	return &friendRequestRepository{base: base{store: store}}
}

func (r *friendRequestRepository) CreateFriendRequest(_ context.Context, request *entity.FriendRequest) error {
	if err := r.store.checkFailure(OpCreateFriendRequest); err != nil {
		return err
	}

	request.ID = newID()
	doc := *request
	doc.ID = ""
	r.apply(func() { r.store.requests[request.ID] = doc })

	return nil
}

func (r *friendRequestRepository) FindFriendRequestByID(_ context.Context, id string) (*entity.FriendRequest, error) {
	if err := r.checkRead(); err != nil {
		return nil, err
	}
	if err := r.store.checkFailure(OpFindFriendRequest); err != nil {
		return nil, err
	}

	var request entity.FriendRequest
	var ok bool
	r.store.read(func() { request, ok = r.store.requests[id] })
	if !ok {
		return nil, errors.WithStack(repository.ErrFriendRequestNotFound)
	}
	request.ID = id

	return &request, nil
}

func (r *friendRequestRepository) UpdateFriendRequestStatus(_ context.Context, id string, status entity.FriendRequestStatus, updatedAt time.Time) error {
	if err := r.store.checkFailure(OpUpdateFriendRequest); err != nil {
		return err
	}

	r.apply(func() {
		request, ok := r.store.requests[id]
		if !ok {
			return
		}
		request.Status = status
		request.UpdatedAt = updatedAt
		r.store.requests[id] = request
	})

	return nil
}

func (r *friendRequestRepository) HasPendingFriendRequest(_ context.Context, fromUserID, toUserID string) (bool, error) {
	if err := r.store.checkFailure(OpQueryFriendRequests); err != nil {
		return false, err
	}

	var found bool
	r.store.read(func() {
		for _, request := range r.store.requests {
			if request.FromUserID == fromUserID && request.ToUserID == toUserID && request.Status == entity.FriendRequestPending {
				found = true

				return
			}
		}
	})

	return found, nil
}

func (r *friendRequestRepository) WatchPendingReceived(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	return watch(ctx, r.store, OpQueryFriendRequests, func() []*entity.FriendRequest {
		return r.pending(func(request entity.FriendRequest) bool { return request.ToUserID == userID })
	})
}

func (r *friendRequestRepository) WatchPendingSent(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	return watch(ctx, r.store, OpQueryFriendRequests, func() []*entity.FriendRequest {
		return r.pending(func(request entity.FriendRequest) bool { return request.FromUserID == userID })
	})
}

// pending must be called under the read lock.
func (r *friendRequestRepository) pending(match func(entity.FriendRequest) bool) []*entity.FriendRequest {
	requests := make([]*entity.FriendRequest, 0)
	for id, request := range r.store.requests {
		if request.Status != entity.FriendRequestPending || !match(request) {
			continue
		}
		request.ID = id
		requests = append(requests, &request)
	}

	sort.Slice(requests, func(i, j int) bool { return requests[i].CreatedAt.After(requests[j].CreatedAt) })

	return requests
}
