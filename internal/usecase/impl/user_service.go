package impl

import (
	"context"
	"log/slog"
	"strings"
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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	locationRepo repository.LocationRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
	now          func() time.Time
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	LocationRepo repository.LocationRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		locationRepo: params.LocationRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
		now:          time.Now,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// UpsertProfile writes the caller's profile. Server-owned fields survive a rewrite and
// an empty FCM token keeps the stored one.
func (srv *userService) UpsertProfile(ctx context.Context, userID string, input *usecase.ProfileInput) (*entity.User, error) {
	email := entity.NormalizeEmail(input.VerifiedEmail)
	if email == "" {
		return nil, domainerrors.ErrEmailNotVerified
	}
	if claimed := entity.NormalizeEmail(input.Email); claimed != "" && claimed != email {
		srv.log(ctx).Warn("Profile email does not match token",
			slog.String("userID", userID),
			slog.String("claimed", claimed),
		)

		return nil, domainerrors.ErrEmailMismatch.WithDetails("email must be " + email)
	}

	existing, err := srv.userRepo.FindUserByID(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read user")
	}

	now := srv.now().UTC()
	user := &entity.User{
		ID:                     userID,
		Email:                  email,
		DisplayName:            strings.TrimSpace(input.DisplayName),
		ProfilePictureURL:      input.ProfilePictureURL,
		FCMToken:               input.FCMToken,
		LocationSharingEnabled: true,
		CreatedAt:              now,
		LastActive:             now,
	}
	kind := service.DocumentCreated
	if existing != nil {
		kind = service.DocumentUpdated
		user.LocationSharingEnabled = existing.LocationSharingEnabled
		user.CreatedAt = existing.CreatedAt
		if user.FCMToken == "" {
			user.FCMToken = existing.FCMToken
		}
	}

	if err := srv.userRepo.UpsertUser(ctx, user); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to upsert user")
	}

	srv.log(ctx).Info("User profile saved", slog.String("userID", userID), slog.Bool("created", existing == nil))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionUsers, userID, kind, existing, user)

	return user, nil
}

func (srv *userService) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WithDetails("user " + userID + " has no profile")
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read user")
	}

	return user, nil
}

// SearchByEmailPrefix returns up to MaxUserSearchResults users, never the caller.
func (srv *userService) SearchByEmailPrefix(ctx context.Context, currentUserID, prefix string) ([]*entity.User, error) {
	prefix = entity.NormalizeEmail(prefix)
	if prefix == "" {
		return []*entity.User{}, nil
	}

	// One extra row so that dropping the caller still leaves a full page.
	users, err := srv.userRepo.SearchUsersByEmailPrefix(ctx, prefix, usecase.MaxUserSearchResults+1)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to search users")
	}

	result := make([]*entity.User, 0, len(users))
	for _, user := range users {
		if user.ID == currentUserID {
			continue
		}
		user.FCMToken = ""
		result = append(result, user)
		if len(result) == usecase.MaxUserSearchResults {
			break
		}
	}

	return result, nil
}

func (srv *userService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	if err := srv.userRepo.UpdateFCMToken(ctx, userID, token); err != nil {
		return srv.mapUpdateError(err, "failed to update fcm token")
	}
	srv.log(ctx).Debug("FCM token updated", slog.String("userID", userID))

	return nil
}

// SetLocationSharing stores the flag. When sharing is turned off the live location is
// removed so friends stop seeing it immediately.
func (srv *userService) SetLocationSharing(ctx context.Context, userID string, enabled bool) error {
	if err := srv.userRepo.UpdateLocationSharing(ctx, userID, enabled); err != nil {
		return srv.mapUpdateError(err, "failed to update location sharing")
	}

	srv.log(ctx).Info("Location sharing changed", slog.String("userID", userID), slog.Bool("enabled", enabled))
	if enabled {
		return nil
	}

	if err := srv.locationRepo.DeleteLocation(ctx, userID); err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete location")
	}
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionLocations, userID,
		service.DocumentDeleted, nil, nil)

	return nil
}

func (srv *userService) WatchUser(ctx context.Context, userID string) *repository.Subscription[*entity.User] {
	return srv.userRepo.WatchUser(ctx, userID)
}

func (srv *userService) mapUpdateError(err error, msg string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, msg)
}
