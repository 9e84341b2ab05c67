package notification

import (
	"context"
	"log/slog"

	"friendlocator/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
)

type firebaseService struct {
	client *messaging.Client
}

// NewFirebaseService creates a push service backed by Firebase Cloud Messaging
func NewFirebaseService(ctx context.Context, app *firebase.App) (service.PushService, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client}, nil
}

// Send delivers a single data message
func (s *firebaseService) Send(ctx context.Context, msg *service.PushMessage) (string, error) {
	messageID, err := s.client.Send(ctx, toFCMMessage(msg))
	if err != nil {
		return "", errors.Wrap(err, "failed to send notification")
	}

	return messageID, nil
}

func toFCMMessage(msg *service.PushMessage) *messaging.Message {
	fcm := &messaging.Message{
		Token: msg.Token,
		Data:  msg.Data,
	}

	hints := msg.Android
	if hints == nil {
		return fcm
	}

	android := &messaging.AndroidConfig{
		Priority: string(hints.Priority),
	}
	if hints.HasTTL {
		ttl := hints.TTL
		android.TTL = &ttl
	}

	if hints.ChannelID != "" || hints.Title != "" || hints.Body != "" || hints.MaxPriority {
		notification := &messaging.AndroidNotification{
			ChannelID: hints.ChannelID,
			Title:     hints.Title,
			Body:      hints.Body,
			Icon:      hints.Icon,
		}
		if hints.MaxPriority {
			notification.Priority = messaging.PriorityMax
			notification.Visibility = messaging.VisibilityPublic
			notification.DefaultSound = true
			notification.DefaultVibrateTimings = true
		}
		android.Notification = notification
	}
	fcm.Android = android

	return fcm
}

// logPushService records messages instead of sending them. It backs development
// setups without a Firebase project.
type logPushService struct {
	logger *slog.Logger
}

// NewLogPushService creates a push service that only logs
func NewLogPushService(logger *slog.Logger) service.PushService {
	return &logPushService{logger: logger}
}

func (s *logPushService) Send(_ context.Context, msg *service.PushMessage) (string, error) {
	attrs := []any{slog.String("type", msg.Data["type"]), slog.Int("data_keys", len(msg.Data))}
	if msg.Android != nil {
		attrs = append(attrs, slog.String("channel", msg.Android.ChannelID), slog.String("priority", string(msg.Android.Priority)))
	}
	s.logger.Info("[LogPush] Push message", attrs...)

	return "log-" + msg.Data["type"], nil
}
