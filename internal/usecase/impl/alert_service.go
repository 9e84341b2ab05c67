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

// alertService implements the AlertUsecase interface.
type alertService struct {
	userRepo   repository.UserRepository
	friendRepo repository.FriendshipRepository
	alertRepo  repository.AlertRepository
	publisher  service.EventPublisher
	logger     *slog.Logger
	now        func() time.Time
}

// AlertServiceParams holds dependencies for AlertService, injected by Fx.
type AlertServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	FriendRepo repository.FriendshipRepository
	AlertRepo  repository.AlertRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewAlertService is the constructor for alertService.
func NewAlertService(params AlertServiceParams) usecase.AlertUsecase {
	return &alertService{
		userRepo:   params.UserRepo,
		friendRepo: params.FriendRepo,
		alertRepo:  params.AlertRepo,
		publisher:  params.Publisher,
		logger:     params.Logger,
		now:        time.Now,
	}
}

func (srv *alertService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendAlert stores an alert for a friend; the fan-out turns it into a push.
func (srv *alertService) SendAlert(ctx context.Context, fromUserID, toUserID, message string) (*entity.Alert, error) {
	friends, err := srv.friendRepo.AreFriends(ctx, fromUserID, toUserID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to check friendship")
	}
	if !friends {
		return nil, domainerrors.ErrNotFriends
	}

	sender, err := srv.userRepo.FindUserByID(ctx, fromUserID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read sender profile")
	}
	if sender == nil {
		sender = &entity.User{ID: fromUserID}
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = entity.DefaultAlertMessage
	}

	alert := &entity.Alert{
		FromUserID:    fromUserID,
		ToUserID:      toUserID,
		FromUserName:  sender.DisplayName,
		FromUserPhoto: sender.ProfilePictureURL,
		Message:       message,
		CreatedAt:     srv.now().UTC(),
	}
	if err := srv.alertRepo.CreateAlert(ctx, alert); err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create alert")
	}

	srv.log(ctx).Info("Alert sent",
		slog.String("alertID", alert.ID),
		slog.String("fromUserID", fromUserID),
		slog.String("toUserID", toUserID))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionAlerts, alert.ID,
		service.DocumentCreated, nil, alert)

	return alert, nil
}

// MarkRead is allowed for the recipient only.
func (srv *alertService) MarkRead(ctx context.Context, userID, alertID string) error {
	alert, err := srv.findAlert(ctx, alertID)
	if err != nil {
		return err
	}
	if alert.ToUserID != userID {
		return domainerrors.ErrAlertForbidden
	}
	if alert.IsRead {
		return nil
	}

	if err := srv.alertRepo.MarkAlertRead(ctx, alertID); err != nil {
		return srv.mapAlertError(err, "failed to mark alert read")
	}

	read := *alert
	read.IsRead = true
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionAlerts, alertID,
		service.DocumentUpdated, alert, &read)

	return nil
}

// DeleteAlert is allowed for the sender and the recipient.
func (srv *alertService) DeleteAlert(ctx context.Context, userID, alertID string) error {
	alert, err := srv.findAlert(ctx, alertID)
	if err != nil {
		return err
	}
	if alert.ToUserID != userID && alert.FromUserID != userID {
		return domainerrors.ErrAlertForbidden
	}

	if err := srv.alertRepo.DeleteAlert(ctx, alertID); err != nil {
		return srv.mapAlertError(err, "failed to delete alert")
	}

	srv.log(ctx).Info("Alert deleted", slog.String("alertID", alertID), slog.String("userID", userID))
	publishWrite(ctx, srv.publisher, srv.log(ctx), constants.CollectionAlerts, alertID,
		service.DocumentDeleted, alert, nil)

	return nil
}

func (srv *alertService) WatchReceived(ctx context.Context, userID string) *repository.Subscription[[]*entity.Alert] {
	return srv.alertRepo.WatchReceivedAlerts(ctx, userID, usecase.MaxReceivedAlerts)
}

func (srv *alertService) WatchUnreadCount(ctx context.Context, userID string) *repository.Subscription[int] {
	return srv.alertRepo.WatchUnreadAlertCount(ctx, userID)
}

func (srv *alertService) findAlert(ctx context.Context, alertID string) (*entity.Alert, error) {
	alert, err := srv.alertRepo.FindAlertByID(ctx, alertID)
	if err != nil {
		return nil, srv.mapAlertError(err, "failed to find alert")
	}

	return alert, nil
}

func (srv *alertService) mapAlertError(err error, msg string) error {
	if errors.Is(err, repository.ErrAlertNotFound) {
		return domainerrors.ErrAlertNotFound
	}

	return domainerrors.NewDatabaseExecuteError(err, msg)
}
