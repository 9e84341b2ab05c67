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
	"friendlocator/internal/infra/metrics"
	"friendlocator/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	fallbackRequesterName = "Someone"
	fallbackAlertSender   = "A friend"

	iconPersonAdd = "ic_person_add"
	iconAlert     = "ic_alert"
)

// fanoutService implements the FanoutUsecase interface.
type fanoutService struct {
	userRepo repository.UserRepository
	push     service.PushService
	deduper  service.EventDeduper
	metrics  *metrics.FanoutMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// FanoutServiceParams holds dependencies for FanoutService, injected by Fx.
type FanoutServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Push     service.PushService
	Deduper  service.EventDeduper   `optional:"true"`
	Metrics  *metrics.FanoutMetrics `optional:"true"`
	Logger   *slog.Logger
}

// NewFanoutService is the constructor for fanoutService.
func NewFanoutService(params FanoutServiceParams) usecase.FanoutUsecase {
	return &fanoutService{
		userRepo: params.UserRepo,
		push:     params.Push,
		deduper:  params.Deduper,
		metrics:  params.Metrics,
		logger:   params.Logger,
		now:      time.Now,
	}
}

func (srv *fanoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Dispatch routes event to its trigger. Push triggers run at most once per event id
// when a deduper is configured.
func (srv *fanoutService) Dispatch(ctx context.Context, event *service.DocumentEvent) {
	srv.metrics.IncEvent(event.Collection, string(event.Kind))
	logger := srv.log(ctx).With(
		slog.String("eventID", event.EventID),
		slog.String("collection", event.Collection),
		slog.String("documentID", event.DocumentID),
		slog.String("kind", string(event.Kind)))

	switch {
	case event.Collection == constants.CollectionFriendRequests && event.Kind == service.DocumentCreated:
		var request entity.FriendRequest
		if !decodeSide(logger, event.DecodeAfter, &request) {
			return
		}
		request.ID = event.DocumentID
		if srv.firstDelivery(ctx, event, usecase.TriggerFriendRequestCreated) {
			srv.OnFriendRequestCreated(ctx, &request)
		}

	case event.Collection == constants.CollectionFriendRequests && event.Kind == service.DocumentUpdated:
		var before, after entity.FriendRequest
		if !decodeSide(logger, event.DecodeBefore, &before) || !decodeSide(logger, event.DecodeAfter, &after) {
			return
		}
		before.ID, after.ID = event.DocumentID, event.DocumentID
		if !isAcceptance(&before, &after) {
			logger.Debug("Friend request update is not an acceptance, ignoring")

			return
		}
		if srv.firstDelivery(ctx, event, usecase.TriggerFriendRequestAccepted) {
			srv.OnFriendRequestUpdated(ctx, &before, &after)
		}

	case event.Collection == constants.CollectionAlerts && event.Kind == service.DocumentCreated:
		var alert entity.Alert
		if !decodeSide(logger, event.DecodeAfter, &alert) {
			return
		}
		alert.ID = event.DocumentID
		if srv.firstDelivery(ctx, event, usecase.TriggerAlertCreated) {
			srv.OnAlertCreated(ctx, &alert)
		}

	case event.Collection == constants.CollectionLocations && event.Kind != service.DocumentDeleted:
		srv.OnLocationWritten(ctx, event.DocumentID)

	default:
		logger.Debug("No trigger for document event")
	}
}

// OnFriendRequestCreated tells the recipient about a new request.
func (srv *fanoutService) OnFriendRequestCreated(ctx context.Context, request *entity.FriendRequest) {
	srv.run(ctx, usecase.TriggerFriendRequestCreated, func() (string, error) {
		if request.ToUserID == "" {
			return metrics.OutcomeSkipped, errors.New("friend request has no recipient")
		}

		recipient, err := srv.pushTarget(ctx, request.ToUserID)
		if err != nil {
			return metrics.OutcomeFailed, err
		}
		if recipient == nil {
			return metrics.OutcomeSkipped, nil
		}

		name := orDefault(request.FromUserName, fallbackRequesterName)

		return srv.send(ctx, &service.PushMessage{
			Token: recipient.FCMToken,
			Data: map[string]string{
				"type":            constants.PushTypeFriendRequest,
				"request_id":      request.ID,
				"from_user_id":    request.FromUserID,
				"from_user_name":  name,
				"from_user_email": request.FromUserEmail,
				"from_user_photo": request.FromUserPhoto,
			},
			Android: &service.AndroidHints{
				Priority:  service.AndroidPriorityHigh,
				ChannelID: constants.ChannelFriendRequests,
				Title:     "New Friend Request",
				Body:      name + " wants to be your friend",
				Icon:      iconPersonAdd,
			},
		})
	})
}

// OnFriendRequestUpdated tells the sender that the request was accepted.
// Any update other than PENDING to ACCEPTED is ignored.
func (srv *fanoutService) OnFriendRequestUpdated(ctx context.Context, before, after *entity.FriendRequest) {
	if !isAcceptance(before, after) {
		return
	}

	srv.run(ctx, usecase.TriggerFriendRequestAccepted, func() (string, error) {
		sender, err := srv.pushTarget(ctx, after.FromUserID)
		if err != nil {
			return metrics.OutcomeFailed, err
		}
		if sender == nil {
			return metrics.OutcomeSkipped, nil
		}

		acceptor, err := srv.userRepo.FindUserByID(ctx, after.ToUserID)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return metrics.OutcomeFailed, errors.Wrap(err, "failed to read acceptor profile")
		}
		if acceptor == nil {
			acceptor = &entity.User{ID: after.ToUserID}
		}

		name := orDefault(acceptor.DisplayName, fallbackRequesterName)

		return srv.send(ctx, &service.PushMessage{
			Token: sender.FCMToken,
			Data: map[string]string{
				"type":         constants.PushTypeFriendAccepted,
				"friend_id":    after.ToUserID,
				"friend_name":  name,
				"friend_email": acceptor.Email,
			},
			Android: &service.AndroidHints{
				Priority:  service.AndroidPriorityHigh,
				ChannelID: constants.ChannelFriendRequests,
				Title:     "Friend Request Accepted",
				Body:      name + " accepted your friend request!",
				Icon:      iconPersonAdd,
			},
		})
	})
}

// OnAlertCreated delivers an alert immediately or not at all.
func (srv *fanoutService) OnAlertCreated(ctx context.Context, alert *entity.Alert) {
	srv.run(ctx, usecase.TriggerAlertCreated, func() (string, error) {
		if alert.ToUserID == "" {
			return metrics.OutcomeSkipped, errors.New("alert has no recipient")
		}

		recipient, err := srv.pushTarget(ctx, alert.ToUserID)
		if err != nil {
			return metrics.OutcomeFailed, err
		}
		if recipient == nil {
			return metrics.OutcomeSkipped, nil
		}

		name := orDefault(alert.FromUserName, fallbackAlertSender)
		message := orDefault(alert.Message, entity.DefaultAlertMessage)

		return srv.send(ctx, &service.PushMessage{
			Token: recipient.FCMToken,
			Data: map[string]string{
				"type":            constants.PushTypeAlert,
				"alert_id":        alert.ID,
				"from_user_id":    alert.FromUserID,
				"from_user_name":  name,
				"from_user_photo": alert.FromUserPhoto,
				"message":         message,
			},
			Android: &service.AndroidHints{
				Priority:    service.AndroidPriorityHigh,
				HasTTL:      true,
				ChannelID:   constants.ChannelAlerts,
				Title:       "🚨 Alert from " + name,
				Body:        name + " " + message,
				Icon:        iconAlert,
				MaxPriority: true,
			},
		})
	})
}

// OnLocationWritten refreshes last_active of the location's owner.
func (srv *fanoutService) OnLocationWritten(ctx context.Context, userID string) {
	srv.run(ctx, usecase.TriggerLocationWritten, func() (string, error) {
		if err := srv.userRepo.UpdateLastActive(ctx, userID, srv.now().UTC()); err != nil {
			return metrics.OutcomeFailed, domainerrors.NewDatabaseExecuteError(err, "failed to update last active")
		}

		return metrics.OutcomeSent, nil
	})
}

// run executes one trigger, records its outcome and swallows its error.
func (srv *fanoutService) run(ctx context.Context, trigger string, fn func() (string, error)) {
	outcome, err := fn()
	if err != nil {
		srv.log(ctx).Error("Trigger failed", slog.String("trigger", trigger), slog.Any("error", err))
		if outcome == "" {
			outcome = metrics.OutcomeFailed
		}
	}
	srv.metrics.IncTrigger(trigger, outcome)
}

// pushTarget returns the user to notify, or nil when the user is gone or has no token.
func (srv *fanoutService) pushTarget(ctx context.Context, userID string) (*entity.User, error) {
	user, err := srv.userRepo.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Push target not found", slog.String("userID", userID))

		return nil, nil
	}
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to read push target")
	}
	if !user.HasPushToken() {
		srv.log(ctx).Info("Push target has no FCM token", slog.String("userID", userID))

		return nil, nil
	}

	return user, nil
}

func (srv *fanoutService) send(ctx context.Context, msg *service.PushMessage) (string, error) {
	messageID, err := srv.push.Send(ctx, msg)
	if err != nil {
		return metrics.OutcomeFailed, &domainerrors.PushDeliveryError{Token: msg.Token, Err: err}
	}

	srv.log(ctx).Info("Push notification sent",
		slog.String("type", msg.Data["type"]),
		slog.String("messageID", messageID))

	return metrics.OutcomeSent, nil
}

// firstDelivery reports whether the trigger should run for event. Deduper errors fail
// open: a duplicate push is preferred over a lost one.
func (srv *fanoutService) firstDelivery(ctx context.Context, event *service.DocumentEvent, trigger string) bool {
	if srv.deduper == nil || event.EventID == "" {
		return true
	}

	first, err := srv.deduper.FirstDelivery(ctx, event.EventID, trigger)
	if err != nil {
		srv.log(ctx).Warn("Event dedupe unavailable", slog.String("eventID", event.EventID), slog.Any("error", err))

		return true
	}
	if !first {
		srv.log(ctx).Info("Duplicate event delivery skipped",
			slog.String("eventID", event.EventID),
			slog.String("trigger", trigger))
		srv.metrics.IncTrigger(trigger, metrics.OutcomeDuplicate)
	}

	return first
}

func isAcceptance(before, after *entity.FriendRequest) bool {
	return before.Status == entity.FriendRequestPending && after.Status == entity.FriendRequestAccepted
}

func decodeSide(logger *slog.Logger, decode func(any) (bool, error), dst any) bool {
	ok, err := decode(dst)
	if err != nil {
		logger.Error("Malformed document event", slog.Any("error", err))

		return false
	}
	if !ok {
		logger.Warn("Document event is missing a document image")
	}

	return ok
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}
