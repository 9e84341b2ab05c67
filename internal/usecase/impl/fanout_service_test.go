package impl

import (
	"context"
	"testing"
	"time"

	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/service"
	mockSvc "friendlocator/internal/mocks/service"
	"friendlocator/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mustEvent(t *testing.T, collection, id string, kind service.DocumentEventKind, before, after any) *service.DocumentEvent {
	t.Helper()

	event, err := service.NewDocumentEvent(collection, id, kind, before, after)
	require.NoError(t, err)

	return event
}

func captureSend(push *mockSvc.MockPushService, sent *[]*service.PushMessage) {
	push.EXPECT().Send(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, msg *service.PushMessage) (string, error) {
			*sent = append(*sent, msg)

			return "projects/test/messages/1", nil
		})
}

func TestFanoutService_FriendRequestCreated(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
	push := mockSvc.NewMockPushService(t)
	var sent []*service.PushMessage
	captureSend(push, &sent)

	request := &entity.FriendRequest{
		FromUserID:    "u1",
		ToUserID:      "u2",
		FromUserEmail: "alice@example.com",
		FromUserName:  "Alice",
		FromUserPhoto: "https://img.example.com/u1.png",
		Status:        entity.FriendRequestPending,
	}
	env.fanoutService(push, nil).Dispatch(t.Context(),
		mustEvent(t, constants.CollectionFriendRequests, "req-1", service.DocumentCreated, nil, request))

	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, "tok-bob", msg.Token)
	assert.Equal(t, map[string]string{
		"type":            "friend_request",
		"request_id":      "req-1",
		"from_user_id":    "u1",
		"from_user_name":  "Alice",
		"from_user_email": "alice@example.com",
		"from_user_photo": "https://img.example.com/u1.png",
	}, msg.Data)
	require.NotNil(t, msg.Android)
	assert.Equal(t, service.AndroidPriorityHigh, msg.Android.Priority)
	assert.Equal(t, "friend_requests", msg.Android.ChannelID)
	assert.Equal(t, "Alice wants to be your friend", msg.Android.Body)
	assert.False(t, msg.Android.HasTTL)
}

func TestFanoutService_FriendRequestCreated_DefaultsAndSkips(t *testing.T) {
	t.Run("sender name defaults to Someone", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
		push := mockSvc.NewMockPushService(t)
		var sent []*service.PushMessage
		captureSend(push, &sent)

		env.fanoutService(push, nil).OnFriendRequestCreated(t.Context(),
			&entity.FriendRequest{ID: "req-1", FromUserID: "u1", ToUserID: "u2"})

		require.Len(t, sent, 1)
		assert.Equal(t, "Someone", sent[0].Data["from_user_name"])
		assert.Empty(t, sent[0].Data["from_user_email"])
	})

	t.Run("recipient without token", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedUser(t, "u2", "bob@example.com", "Bob", "")
		push := mockSvc.NewMockPushService(t)

		env.fanoutService(push, nil).OnFriendRequestCreated(t.Context(),
			&entity.FriendRequest{ID: "req-1", FromUserID: "u1", ToUserID: "u2"})
	})

	t.Run("recipient missing", func(t *testing.T) {
		env := newTestEnv(t)
		push := mockSvc.NewMockPushService(t)

		env.fanoutService(push, nil).OnFriendRequestCreated(t.Context(),
			&entity.FriendRequest{ID: "req-1", FromUserID: "u1", ToUserID: "u2"})
	})
}

func TestFanoutService_DuplicateCreateEventDoesNotMutate(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "tok-alice")
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")

	request, err := env.friendshipService().SendFriendRequest(t.Context(), "u1", "bob@example.com")
	require.NoError(t, err)
	events := env.publisher.drain()
	require.Len(t, events, 1)

	push := mockSvc.NewMockPushService(t)
	var sent []*service.PushMessage
	captureSend(push, &sent)
	fanout := env.fanoutService(push, nil)

	fanout.Dispatch(t.Context(), events[0])
	fanout.Dispatch(t.Context(), events[0])

	assert.Len(t, sent, 2, "without a deduper both deliveries notify")
	sub := env.requests.WatchPendingReceived(t.Context(), "u2")
	pending := next(t, sub)
	sub.Close()
	require.Len(t, pending, 1)
	assert.Equal(t, request.ID, pending[0].ID)
	assert.Empty(t, env.friendIDs(t, "u1"))
	assert.Empty(t, env.friendIDs(t, "u2"))
	assert.Empty(t, env.publisher.drain(), "triggers never write friend requests or friendships")
}

func TestFanoutService_DeduperSuppressesRedelivery(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
	event := mustEvent(t, constants.CollectionFriendRequests, "req-1", service.DocumentCreated, nil,
		&entity.FriendRequest{FromUserID: "u1", ToUserID: "u2", Status: entity.FriendRequestPending})

	push := mockSvc.NewMockPushService(t)
	push.EXPECT().Send(mock.Anything, mock.Anything).Return("m-1", nil).Once()
	deduper := mockSvc.NewMockEventDeduper(t)
	deduper.EXPECT().FirstDelivery(mock.Anything, event.EventID, usecase.TriggerFriendRequestCreated).Return(true, nil).Once()
	deduper.EXPECT().FirstDelivery(mock.Anything, event.EventID, usecase.TriggerFriendRequestCreated).Return(false, nil).Once()

	fanout := env.fanoutService(push, deduper)
	fanout.Dispatch(t.Context(), event)
	fanout.Dispatch(t.Context(), event)
}

func TestFanoutService_DeduperErrorFailsOpen(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
	event := mustEvent(t, constants.CollectionAlerts, "a-1", service.DocumentCreated, nil,
		&entity.Alert{FromUserID: "u1", ToUserID: "u2"})

	push := mockSvc.NewMockPushService(t)
	push.EXPECT().Send(mock.Anything, mock.Anything).Return("m-1", nil).Once()
	deduper := mockSvc.NewMockEventDeduper(t)
	deduper.EXPECT().FirstDelivery(mock.Anything, event.EventID, usecase.TriggerAlertCreated).Return(false, errors.New("redis down"))

	env.fanoutService(push, deduper).Dispatch(t.Context(), event)
}

func TestFanoutService_FriendRequestUpdated(t *testing.T) {
	pending := entity.FriendRequest{FromUserID: "u1", ToUserID: "u2", Status: entity.FriendRequestPending}
	accepted := entity.FriendRequest{FromUserID: "u1", ToUserID: "u2", Status: entity.FriendRequestAccepted}
	declined := entity.FriendRequest{FromUserID: "u1", ToUserID: "u2", Status: entity.FriendRequestDeclined}

	tests := []struct {
		name     string
		before   entity.FriendRequest
		after    entity.FriendRequest
		wantPush bool
	}{
		{name: "pending to accepted", before: pending, after: accepted, wantPush: true},
		{name: "accepted to accepted", before: accepted, after: accepted},
		{name: "pending to declined", before: pending, after: declined},
		{name: "pending to pending", before: pending, after: pending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seedUser(t, "u1", "alice@example.com", "Alice", "tok-alice")
			env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
			push := mockSvc.NewMockPushService(t)
			var sent []*service.PushMessage
			if tt.wantPush {
				captureSend(push, &sent)
			}

			env.fanoutService(push, nil).Dispatch(t.Context(),
				mustEvent(t, constants.CollectionFriendRequests, "req-1", service.DocumentUpdated, &tt.before, &tt.after))

			if !tt.wantPush {
				return
			}
			require.Len(t, sent, 1)
			assert.Equal(t, "tok-alice", sent[0].Token)
			assert.Equal(t, map[string]string{
				"type":         "friend_accepted",
				"friend_id":    "u2",
				"friend_name":  "Bob",
				"friend_email": "bob@example.com",
			}, sent[0].Data)
			assert.Equal(t, "Bob accepted your friend request!", sent[0].Android.Body)
		})
	}
}

func TestFanoutService_AlertCreated(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
	push := mockSvc.NewMockPushService(t)
	var sent []*service.PushMessage
	captureSend(push, &sent)

	env.fanoutService(push, nil).Dispatch(t.Context(),
		mustEvent(t, constants.CollectionAlerts, "a-1", service.DocumentCreated, nil,
			&entity.Alert{FromUserID: "u1", ToUserID: "u2"}))

	require.Len(t, sent, 1)
	msg := sent[0]
	assert.Equal(t, map[string]string{
		"type":            "alert",
		"alert_id":        "a-1",
		"from_user_id":    "u1",
		"from_user_name":  "A friend",
		"from_user_photo": "",
		"message":         "is trying to reach you!",
	}, msg.Data)
	assert.Equal(t, service.AndroidPriorityHigh, msg.Android.Priority)
	assert.True(t, msg.Android.HasTTL)
	assert.Zero(t, msg.Android.TTL)
	assert.True(t, msg.Android.MaxPriority)
	assert.Equal(t, "alerts", msg.Android.ChannelID)
	assert.Equal(t, "A friend is trying to reach you!", msg.Android.Body)
}

func TestFanoutService_PushFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
	push := mockSvc.NewMockPushService(t)
	push.EXPECT().Send(mock.Anything, mock.Anything).Return("", errors.New("registration-token-not-registered"))

	assert.NotPanics(t, func() {
		env.fanoutService(push, nil).OnAlertCreated(t.Context(), &entity.Alert{ID: "a-1", ToUserID: "u2"})
	})
}

func TestFanoutService_LocationWritten(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	push := mockSvc.NewMockPushService(t)
	fanout := env.fanoutService(push, nil)

	location := &entity.UserLocation{UserID: "u1", Latitude: 1, Longitude: 2, UpdatedAt: testNow}
	fanout.Dispatch(t.Context(), mustEvent(t, constants.CollectionLocations, "u1", service.DocumentCreated, nil, location))

	user, err := env.users.FindUserByID(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, testNow, user.LastActive)

	require.NoError(t, env.users.UpdateLastActive(t.Context(), "u1", testNow.Add(-time.Hour)))
	fanout.Dispatch(t.Context(), mustEvent(t, constants.CollectionLocations, "u1", service.DocumentDeleted, location, nil))

	user, err = env.users.FindUserByID(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(-time.Hour), user.LastActive, "deletes do not touch last_active")
}

func TestFanoutService_LocationWrittenForMissingUser(t *testing.T) {
	env := newTestEnv(t)

	assert.NotPanics(t, func() {
		env.fanoutService(mockSvc.NewMockPushService(t), nil).OnLocationWritten(t.Context(), "ghost")
	})
}

func TestFanoutService_IgnoresOtherEvents(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-bob")
	push := mockSvc.NewMockPushService(t)
	fanout := env.fanoutService(push, nil)

	fanout.Dispatch(t.Context(), mustEvent(t, constants.CollectionUsers, "u2", service.DocumentUpdated, nil, &entity.User{}))
	fanout.Dispatch(t.Context(), mustEvent(t, constants.CollectionFriendships, "f-1", service.DocumentDeleted, &entity.Friendship{}, nil))
	fanout.Dispatch(t.Context(), mustEvent(t, constants.CollectionAlerts, "a-1", service.DocumentUpdated,
		&entity.Alert{ToUserID: "u2"}, &entity.Alert{ToUserID: "u2", IsRead: true}))
	fanout.Dispatch(t.Context(), &service.DocumentEvent{
		EventID:    "broken",
		Collection: constants.CollectionFriendRequests,
		DocumentID: "req-1",
		Kind:       service.DocumentCreated,
		After:      []byte("{not json"),
	})
}
