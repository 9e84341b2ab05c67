package notification

import (
	"testing"
	"time"

	"friendlocator/internal/domain/service"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToFCMMessage_DataOnly(t *testing.T) {
	msg := toFCMMessage(&service.PushMessage{
		Token: "tok",
		Data:  map[string]string{"type": "friend_request"},
	})

	assert.Equal(t, "tok", msg.Token)
	assert.Equal(t, "friend_request", msg.Data["type"])
	assert.Nil(t, msg.Android)
	assert.Nil(t, msg.Notification)
}

func TestToFCMMessage_HighPriorityWithChannel(t *testing.T) {
	msg := toFCMMessage(&service.PushMessage{
		Token: "tok",
		Data:  map[string]string{"type": "friend_request"},
		Android: &service.AndroidHints{
			Priority:  service.AndroidPriorityHigh,
			ChannelID: "friend_requests",
		},
	})

	require.NotNil(t, msg.Android)
	assert.Equal(t, "high", msg.Android.Priority)
	assert.Nil(t, msg.Android.TTL)
	require.NotNil(t, msg.Android.Notification)
	assert.Equal(t, "friend_requests", msg.Android.Notification.ChannelID)
	assert.Equal(t, messaging.AndroidNotificationPriority(0), msg.Android.Notification.Priority)
}

func TestToFCMMessage_AlertIsImmediateAndMaxPriority(t *testing.T) {
	msg := toFCMMessage(&service.PushMessage{
		Token: "tok",
		Data:  map[string]string{"type": "alert"},
		Android: &service.AndroidHints{
			Priority:    service.AndroidPriorityHigh,
			HasTTL:      true,
			ChannelID:   "alerts",
			MaxPriority: true,
		},
	})

	require.NotNil(t, msg.Android)
	require.NotNil(t, msg.Android.TTL)
	assert.Equal(t, time.Duration(0), *msg.Android.TTL)
	notification := msg.Android.Notification
	require.NotNil(t, notification)
	assert.Equal(t, messaging.PriorityMax, notification.Priority)
	assert.Equal(t, messaging.VisibilityPublic, notification.Visibility)
	assert.True(t, notification.DefaultSound)
	assert.True(t, notification.DefaultVibrateTimings)
}
