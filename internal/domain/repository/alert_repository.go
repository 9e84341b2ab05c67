package repository

import (
	"context"

	"friendlocator/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrAlertNotFound is returned when an alert document does not exist.
var ErrAlertNotFound = errors.New("alert not found")

// AlertRepository defines persistence for alerts.
type AlertRepository interface {
	// CreateAlert persists a new alert and assigns its ID.
	CreateAlert(ctx context.Context, alert *entity.Alert) error

	// FindAlertByID retrieves an alert by its ID.
	FindAlertByID(ctx context.Context, id string) (*entity.Alert, error)

	// MarkAlertRead sets is_read on an alert.
	MarkAlertRead(ctx context.Context, id string) error

	// DeleteAlert removes an alert.
	DeleteAlert(ctx context.Context, id string) error

	// WatchReceivedAlerts streams up to limit alerts addressed to userID, newest first.
	WatchReceivedAlerts(ctx context.Context, userID string, limit int) *Subscription[[]*entity.Alert]

	// WatchUnreadAlertCount streams the number of unread alerts addressed to userID.
	WatchUnreadAlertCount(ctx context.Context, userID string) *Subscription[int]
}
