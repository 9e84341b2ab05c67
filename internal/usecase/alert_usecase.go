package usecase

import (
	"context"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
)

// MaxReceivedAlerts bounds WatchReceived.
const MaxReceivedAlerts = 50

// AlertUsecase defines alerts between friends.
type AlertUsecase interface {
	// SendAlert pings a friend. An empty message is replaced by the default one.
	SendAlert(ctx context.Context, fromUserID, toUserID, message string) (*entity.Alert, error)

	// MarkRead flags an alert addressed to userID as read.
	MarkRead(ctx context.Context, userID, alertID string) error

	// DeleteAlert removes an alert sent or received by userID.
	DeleteAlert(ctx context.Context, userID, alertID string) error

	// WatchReceived streams the newest alerts addressed to userID.
	WatchReceived(ctx context.Context, userID string) *repository.Subscription[[]*entity.Alert]

	// WatchUnreadCount streams the number of unread alerts addressed to userID.
	WatchUnreadCount(ctx context.Context, userID string) *repository.Subscription[int]
}
