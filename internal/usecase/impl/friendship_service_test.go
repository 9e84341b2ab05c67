package impl

import (
	"testing"
	"time"

	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/infra/persistence/memory"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStore = errors.New("store unavailable")

func TestFriendshipService_SendFriendRequest_Success(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "tok-1")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "tok-2")

	request, err := env.friendshipService().SendFriendRequest(t.Context(), alice.ID, "  Bob@Example.COM ")
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, alice.ID, request.FromUserID)
	assert.Equal(t, bob.ID, request.ToUserID)
	assert.Equal(t, "bob@example.com", request.ToUserEmail)
	assert.Equal(t, "alice@example.com", request.FromUserEmail)
	assert.Equal(t, "Alice", request.FromUserName)
	assert.Equal(t, alice.ProfilePictureURL, request.FromUserPhoto)
	assert.Equal(t, entity.FriendRequestPending, request.Status)
	assert.Equal(t, testNow, request.CreatedAt)

	events := env.publisher.drain()
	require.Len(t, events, 1)
	assert.Equal(t, constants.CollectionFriendRequests, events[0].Collection)
	assert.Equal(t, service.DocumentCreated, events[0].Kind)
	assert.Equal(t, request.ID, events[0].DocumentID)
}

func TestFriendshipService_SendFriendRequest_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, env *testEnv, alice, bob *entity.User)
		toEmail string
		want    error
	}{
		{
			name:    "unknown email",
			toEmail: "nobody@example.com",
			want:    domainerrors.ErrUserNotFound,
		},
		{
			name:    "self request",
			toEmail: "ALICE@example.com",
			want:    domainerrors.ErrSelfRequest,
		},
		{
			name: "pending request exists",
			setup: func(t *testing.T, env *testEnv, alice, bob *entity.User) {
				_, err := env.friendshipService().SendFriendRequest(t.Context(), alice.ID, bob.Email)
				require.NoError(t, err)
			},
			toEmail: "bob@example.com",
			want:    domainerrors.ErrDuplicateRequest,
		},
		{
			name: "already friends",
			setup: func(t *testing.T, env *testEnv, alice, bob *entity.User) {
				env.seedFriends(t, alice, bob)
			},
			toEmail: "bob@example.com",
			want:    domainerrors.ErrAlreadyFriends,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
			bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
			if tt.setup != nil {
				tt.setup(t, env, alice, bob)
			}
			env.publisher.drain()

			_, err := env.friendshipService().SendFriendRequest(t.Context(), alice.ID, tt.toEmail)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, env.publisher.drain(), "rejected requests publish nothing")
		})
	}
}

func TestFriendshipService_SendFriendRequest_ReverseDirectionAllowed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	srv := env.friendshipService()

	_, err := srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	require.NoError(t, err)

	_, err = srv.SendFriendRequest(t.Context(), bob.ID, alice.Email)
	assert.NoError(t, err)
}

func TestFriendshipService_SendFriendRequest_MissingSenderProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u2", "bob@example.com", "Bob", "")

	request, err := env.friendshipService().SendFriendRequest(t.Context(), "ghost", "bob@example.com")
	require.NoError(t, err)
	assert.Empty(t, request.FromUserEmail)
	assert.Empty(t, request.FromUserName)
	assert.Empty(t, request.FromUserPhoto)
}

func TestFriendshipService_SendFriendRequest_StoreError(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	env.store.InjectFailure(memory.OpCreateFriendRequest, 0, errStore)

	_, err := env.friendshipService().SendFriendRequest(t.Context(), "u1", "bob@example.com")
	require.ErrorIs(t, err, errStore)

	var dbErr *domainerrors.DatabaseExecuteError
	assert.ErrorAs(t, err, &dbErr)
}

func TestFriendshipService_AcceptFriendRequest_CreatesPair(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	srv := env.friendshipService()

	request, err := srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	require.NoError(t, err)
	env.publisher.drain()

	friendship, err := srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, friendship.UserID)
	assert.Equal(t, alice.ID, friendship.FriendID)
	assert.Equal(t, "alice@example.com", friendship.FriendEmail)
	assert.Equal(t, "Alice", friendship.FriendName)

	assert.Equal(t, []string{bob.ID}, env.friendIDs(t, alice.ID))
	assert.Equal(t, []string{alice.ID}, env.friendIDs(t, bob.ID))

	stored, err := env.requests.FindFriendRequestByID(t.Context(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FriendRequestAccepted, stored.Status)
	assert.Equal(t, testNow, stored.UpdatedAt)

	events := env.publisher.drain()
	require.Len(t, events, 1)
	assert.Equal(t, service.DocumentUpdated, events[0].Kind)
	var before, after entity.FriendRequest
	_, err = events[0].DecodeBefore(&before)
	require.NoError(t, err)
	_, err = events[0].DecodeAfter(&after)
	require.NoError(t, err)
	assert.Equal(t, entity.FriendRequestPending, before.Status)
	assert.Equal(t, entity.FriendRequestAccepted, after.Status)
}

func TestFriendshipService_AcceptFriendRequest_Guards(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	srv := env.friendshipService()

	request, err := srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	require.NoError(t, err)

	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, "missing")
	require.ErrorIs(t, err, domainerrors.ErrRequestNotFound)

	_, err = srv.AcceptFriendRequest(t.Context(), alice.ID, request.ID)
	require.ErrorIs(t, err, domainerrors.ErrUnauthorizedRequest, "only the recipient may accept")
	assert.Empty(t, env.friendIDs(t, alice.ID))

	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.NoError(t, err)

	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.ErrorIs(t, err, domainerrors.ErrRequestNotPending)
	assert.Len(t, env.friendIDs(t, bob.ID), 1, "a second accept must not duplicate the pair")
}

func TestFriendshipService_AcceptFriendRequest_FailureBetweenWritesIsAtomic(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	srv := env.friendshipService()

	request, err := srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	require.NoError(t, err)
	env.publisher.drain()

	env.store.InjectFailure(memory.OpCreateFriendship, 1, errStore)

	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.ErrorIs(t, err, errStore)

	assert.Empty(t, env.friendIDs(t, alice.ID))
	assert.Empty(t, env.friendIDs(t, bob.ID))
	stored, err := env.requests.FindFriendRequestByID(t.Context(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FriendRequestPending, stored.Status)
	assert.Empty(t, env.publisher.drain())

	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.NoError(t, err, "the request stays answerable after a failed accept")
}

func TestFriendshipService_AcceptFriendRequest_MissingProfiles(t *testing.T) {
	env := newTestEnv(t)
	request := &entity.FriendRequest{
		FromUserID: "gone",
		ToUserID:   "u2",
		Status:     entity.FriendRequestPending,
	}
	require.NoError(t, env.requests.CreateFriendRequest(t.Context(), request))

	friendship, err := env.friendshipService().AcceptFriendRequest(t.Context(), "u2", request.ID)
	require.NoError(t, err)
	assert.Equal(t, "gone", friendship.FriendID)
	assert.Empty(t, friendship.FriendEmail)
	assert.Empty(t, friendship.FriendName)
}

func TestFriendshipService_DeclineFriendRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	srv := env.friendshipService()

	request, err := srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	require.NoError(t, err)

	require.ErrorIs(t, srv.DeclineFriendRequest(t.Context(), alice.ID, request.ID), domainerrors.ErrUnauthorizedRequest)
	require.NoError(t, srv.DeclineFriendRequest(t.Context(), bob.ID, request.ID))

	stored, err := env.requests.FindFriendRequestByID(t.Context(), request.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FriendRequestDeclined, stored.Status)
	assert.Empty(t, env.friendIDs(t, bob.ID))

	require.ErrorIs(t, srv.DeclineFriendRequest(t.Context(), bob.ID, request.ID), domainerrors.ErrRequestNotPending)
	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.ErrorIs(t, err, domainerrors.ErrRequestNotPending, "DECLINED is terminal")

	_, err = srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	assert.NoError(t, err, "a declined request does not block a new one")
}

func TestFriendshipService_RemoveFriend(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	env.seedFriends(t, alice, bob)

	require.NoError(t, env.friendshipService().RemoveFriend(t.Context(), alice.ID, bob.ID))

	assert.Empty(t, env.friendIDs(t, alice.ID))
	assert.Empty(t, env.friendIDs(t, bob.ID))
	assert.Len(t, env.publisher.drain(), 2)
}

func TestFriendshipService_RemoveFriend_QueryFailureDeletesNothing(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	env.seedFriends(t, alice, bob)

	env.store.InjectFailure(memory.OpQueryFriendships, 1, errStore)

	err := env.friendshipService().RemoveFriend(t.Context(), alice.ID, bob.ID)
	require.ErrorIs(t, err, errStore)

	assert.Equal(t, []string{bob.ID}, env.friendIDs(t, alice.ID))
	assert.Equal(t, []string{alice.ID}, env.friendIDs(t, bob.ID))
}

func TestFriendshipService_RemoveFriend_NotFriendsIsNoop(t *testing.T) {
	env := newTestEnv(t)

	assert.NoError(t, env.friendshipService().RemoveFriend(t.Context(), "u1", "u2"))
	assert.Empty(t, env.publisher.drain())
}

func TestFriendshipService_WatchPendingRequests(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	srv := env.friendshipService()

	sub := srv.WatchPendingRequests(t.Context(), bob.ID)
	defer sub.Close()
	assert.Empty(t, next(t, sub))

	request, err := srv.SendFriendRequest(t.Context(), alice.ID, bob.Email)
	require.NoError(t, err)
	pending := next(t, sub)
	require.Len(t, pending, 1)
	assert.Equal(t, request.ID, pending[0].ID)

	_, err = srv.AcceptFriendRequest(t.Context(), bob.ID, request.ID)
	require.NoError(t, err)
	assert.Empty(t, next(t, sub), "accepted requests leave the pending list")
}

func TestFriendshipService_WatchFriends_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	carol := env.seedUser(t, "u3", "carol@example.com", "Carol", "")

	require.NoError(t, env.friendships.CreateFriendship(t.Context(), entity.NewFriendship(alice.ID, bob, testNow.Add(-time.Hour))))
	require.NoError(t, env.friendships.CreateFriendship(t.Context(), entity.NewFriendship(alice.ID, carol, testNow)))

	sub := env.friendshipService().WatchFriends(t.Context(), alice.ID)
	defer sub.Close()

	friends := next(t, sub)
	require.Len(t, friends, 2)
	assert.Equal(t, carol.ID, friends[0].FriendID)
	assert.Equal(t, bob.ID, friends[1].FriendID)
}
