package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "friendlocator/internal/delivery/context"
	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// friendshipService implements the FriendshipUsecase interface.
type friendshipService struct {
	txManager   repository.TransactionManager
	userRepo    repository.UserRepository
	requestRepo repository.FriendRequestRepository
	friendRepo  repository.FriendshipRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
	now         func() time.Time
}

// FriendshipServiceParams holds dependencies for FriendshipService, injected by Fx.
type FriendshipServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	RequestRepo repository.FriendRequestRepository
	FriendRepo  repository.FriendshipRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewFriendshipService is the constructor for friendshipService.
func NewFriendshipService(params FriendshipServiceParams) usecase.FriendshipUsecase {
	return &friendshipService{
		txManager:   params.TxManager,
		userRepo:    params.UserRepo,
		requestRepo: params.RequestRepo,
		friendRepo:  params.FriendRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *friendshipService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendFriendRequest validates the target and writes a PENDING request.
func (srv *friendshipService) SendFriendRequest(ctx context.Context, currentUserID, toEmail string) (*entity.FriendRequest, error) {
	email := entity.NormalizeEmail(toEmail)

	target, err := srv.userRepo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user by email")
	}

	if target.ID == currentUserID {
		return nil, domainerrors.ErrSelfRequest
	}

	pending, err := srv.requestRepo.HasPendingFriendRequest(ctx, currentUserID, target.ID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to check pending requests")
	}
	if pending {
		return nil, domainerrors.ErrDuplicateRequest
	}

	friends, err := srv.friendRepo.AreFriends(ctx, currentUserID, target.ID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to check friendship")
	}
	if friends {
		return nil, domainerrors.ErrAlreadyFriends
	}

	sender, err := srv.profileOrEmpty(ctx, srv.userRepo, currentUserID)
	if err != nil {
		return nil, err
	}

	now := srv.now().UTC()
	request := &entity.FriendRequest{
		FromUserID:    currentUserID,
		ToUserID:      target.ID,
		FromUserEmail: sender.Email,
		FromUserName:  sender.DisplayName,
		FromUserPhoto: sender.ProfilePictureURL,
		ToUserEmail:   email,
		Status:        entity.FriendRequestPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := srv.requestRepo.CreateFriendRequest(ctx, request); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create friend request")
	}

	srv.log(ctx).Info("Friend request sent",
		slog.String("requestID", request.ID),
		slog.String("fromUserID", currentUserID),
		slog.String("toUserID", target.ID))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionFriendRequests, request.ID,
		service.DocumentCreated, nil, request)

	return request, nil
}

// AcceptFriendRequest marks the request ACCEPTED and creates both friendship documents
// in one transaction.
func (srv *friendshipService) AcceptFriendRequest(ctx context.Context, currentUserID, requestID string) (*entity.Friendship, error) {
	var before, after *entity.FriendRequest
	var recipientView *entity.Friendship

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		request, err := srv.loadRespondableRequest(ctx, factory.NewFriendRequestRepository(), currentUserID, requestID)
		if err != nil {
			return err
		}

		users := factory.NewUserRepository()
		sender, err := srv.profileOrEmpty(ctx, users, request.FromUserID)
		if err != nil {
			return err
		}
		recipient, err := srv.profileOrEmpty(ctx, users, request.ToUserID)
		if err != nil {
			return err
		}

		now := srv.now().UTC()
		if err := factory.NewFriendRequestRepository().UpdateFriendRequestStatus(ctx, requestID, entity.FriendRequestAccepted, now); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update friend request status")
		}

		friendships := factory.NewFriendshipRepository()
		senderView := entity.NewFriendship(sender.ID, recipient, now)
		if err := friendships.CreateFriendship(ctx, senderView); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create friendship")
		}
		recipientView = entity.NewFriendship(recipient.ID, sender, now)
		if err := friendships.CreateFriendship(ctx, recipientView); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to create friendship")
		}

		before = request
		accepted := *request
		accepted.Status = entity.FriendRequestAccepted
		accepted.UpdatedAt = now
		after = &accepted

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to accept friend request",
			slog.String("requestID", requestID),
			slog.String("userID", currentUserID),
			slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to accept friend request")
	}

	srv.log(ctx).Info("Friend request accepted",
		slog.String("requestID", requestID),
		slog.String("fromUserID", before.FromUserID),
		slog.String("toUserID", before.ToUserID))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionFriendRequests, requestID,
		service.DocumentUpdated, before, after)

	return recipientView, nil
}

// DeclineFriendRequest marks the request DECLINED. No friendship is created.
func (srv *friendshipService) DeclineFriendRequest(ctx context.Context, currentUserID, requestID string) error {
	var before, after *entity.FriendRequest

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		requests := factory.NewFriendRequestRepository()
		request, err := srv.loadRespondableRequest(ctx, requests, currentUserID, requestID)
		if err != nil {
			return err
		}

		now := srv.now().UTC()
		if err := requests.UpdateFriendRequestStatus(ctx, requestID, entity.FriendRequestDeclined, now); err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update friend request status")
		}

		before = request
		declined := *request
		declined.Status = entity.FriendRequestDeclined
		declined.UpdatedAt = now
		after = &declined

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to decline friend request")
	}

	srv.log(ctx).Info("Friend request declined", slog.String("requestID", requestID))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionFriendRequests, requestID,
		service.DocumentUpdated, before, after)

	return nil
}

// RemoveFriend deletes both directions of the friendship. Both queries run before any
// delete, so a failed query leaves the pair untouched.
func (srv *friendshipService) RemoveFriend(ctx context.Context, currentUserID, friendID string) error {
	var removed []*entity.Friendship

	err := srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		friendships := factory.NewFriendshipRepository()

		mine, err := friendships.FindFriendships(ctx, currentUserID, friendID)
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to query friendships")
		}
		theirs, err := friendships.FindFriendships(ctx, friendID, currentUserID)
		if err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to query friendships")
		}

		removed = append(mine, theirs...)
		for _, friendship := range removed {
			if err := friendships.DeleteFriendship(ctx, friendship.ID); err != nil {
				return domainerrors.NewDatabaseExecuteError(err, "failed to delete friendship")
			}
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to remove friend")
	}

	srv.log(ctx).Info("Friend removed",
		slog.String("userID", currentUserID),
		slog.String("friendID", friendID),
		slog.Int("documents", len(removed)))
	for _, friendship := range removed {
		publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionFriendships, friendship.ID,
			service.DocumentDeleted, friendship, nil)
	}

	return nil
}

func (srv *friendshipService) WatchPendingRequests(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	return srv.requestRepo.WatchPendingReceived(ctx, userID)
}

func (srv *friendshipService) WatchSentRequests(ctx context.Context, userID string) *repository.Subscription[[]*entity.FriendRequest] {
	return srv.requestRepo.WatchPendingSent(ctx, userID)
}

func (srv *friendshipService) WatchFriends(ctx context.Context, userID string) *repository.Subscription[[]*entity.Friendship] {
	return srv.friendRepo.WatchFriends(ctx, userID)
}

func (srv *friendshipService) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	ids, err := srv.friendRepo.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list friend ids")
	}

	return ids, nil
}

// loadRespondableRequest reads a request and checks that currentUserID may still answer it.
func (srv *friendshipService) loadRespondableRequest(
	ctx context.Context,
	requests repository.FriendRequestTxRepository,
	currentUserID, requestID string,
) (*entity.FriendRequest, error) {
	request, err := requests.FindFriendRequestByID(ctx, requestID)
	if errors.Is(err, repository.ErrFriendRequestNotFound) {
		return nil, domainerrors.ErrRequestNotFound
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find friend request")
	}

	if request.ToUserID != currentUserID {
		return nil, domainerrors.ErrUnauthorizedRequest
	}
	if !request.Status.CanTransitionTo(entity.FriendRequestAccepted) {
		return nil, domainerrors.ErrRequestNotPending
	}

	return request, nil
}

// profileOrEmpty reads a user document. A missing profile yields a user with only the
// id set, so denormalized fields fall back to empty strings.
func (srv *friendshipService) profileOrEmpty(ctx context.Context, users repository.UserReader, userID string) (*entity.User, error) {
	user, err := users.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Warn("User profile missing, using empty denormalized fields", slog.String("userID", userID))

		return &entity.User{ID: userID}, nil
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read user profile")
	}

	return user, nil
}
