package service

import (
	"context"
	"time"
)

// AndroidPriority is the delivery priority of a message on Android.
type AndroidPriority string

const (
	AndroidPriorityNormal AndroidPriority = "normal"
	AndroidPriorityHigh   AndroidPriority = "high"
)

// AndroidHints carries platform delivery hints for Android devices.
type AndroidHints struct {
	Priority AndroidPriority
	// TTL bounds how long the message is kept while the device is offline.
	// A zero value with HasTTL set means deliver now or drop.
	TTL       time.Duration
	HasTTL    bool
	ChannelID string
	Title     string
	Body      string
	Icon      string
	// MaxPriority marks the notification itself as max priority, public on the lock
	// screen, with the default sound and vibration.
	MaxPriority bool
}

// PushMessage is a data message addressed to a single device token.
type PushMessage struct {
	Token   string
	Data    map[string]string
	Android *AndroidHints
}

// PushService defines the interface for push notification delivery
type PushService interface {
	// Send delivers msg to its device token and returns the provider's message id.
	Send(ctx context.Context, msg *PushMessage) (string, error)
}
