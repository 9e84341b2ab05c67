package usecase

import (
	"context"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/service"
)

// Trigger names, used for logging, metrics and deduplication.
const (
	TriggerFriendRequestCreated  = "friend_request_created"
	TriggerFriendRequestAccepted = "friend_request_accepted"
	TriggerAlertCreated          = "alert_created"
	TriggerLocationWritten       = "location_written"
)

// FanoutUsecase reacts to document writes. None of its operations report errors:
// every failure is logged and swallowed so the event transport never retries.
type FanoutUsecase interface {
	// Dispatch routes a document event to the matching trigger and ignores the rest.
	Dispatch(ctx context.Context, event *service.DocumentEvent)

	// OnFriendRequestCreated pushes a friend_request notification to the recipient.
	OnFriendRequestCreated(ctx context.Context, request *entity.FriendRequest)

	// OnFriendRequestUpdated pushes a friend_accepted notification to the sender, only
	// when the status moved from PENDING to ACCEPTED.
	OnFriendRequestUpdated(ctx context.Context, before, after *entity.FriendRequest)

	// OnAlertCreated pushes an immediate, max priority alert to the recipient.
	OnAlertCreated(ctx context.Context, alert *entity.Alert)

	// OnLocationWritten refreshes the user's last_active timestamp.
	OnLocationWritten(ctx context.Context, userID string)
}

// CleanupUsecase purges location documents older than the retention window.
type CleanupUsecase interface {
	// CleanupStaleLocations deletes every location not updated in the last 24 hours
	// and returns how many were removed.
	CleanupStaleLocations(ctx context.Context) (int, error)
}
