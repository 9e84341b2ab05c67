package impl

import (
	"fmt"
	"testing"
	"time"

	"friendlocator/internal/domain/constants"
	"friendlocator/internal/domain/entity"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/infra/persistence/memory"
	"friendlocator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationService_UpdateLocation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	srv := env.locationService()

	location, err := srv.UpdateLocation(t.Context(), "u1", &usecase.LocationInput{Latitude: 25.03, Longitude: 121.56, Accuracy: 5})
	require.NoError(t, err)
	assert.Equal(t, "u1", location.ID)
	assert.Equal(t, testNow, location.UpdatedAt)

	_, err = srv.UpdateLocation(t.Context(), "u1", &usecase.LocationInput{Latitude: 25.04, Longitude: 121.57})
	require.NoError(t, err)

	events := env.publisher.drain()
	require.Len(t, events, 2)
	assert.Equal(t, constants.CollectionLocations, events[0].Collection)
	assert.Equal(t, service.DocumentCreated, events[0].Kind)
	assert.Equal(t, service.DocumentUpdated, events[1].Kind)

	stored, err := env.locations.FindLocationByUserID(t.Context(), "u1")
	require.NoError(t, err)
	assert.InDelta(t, 25.04, stored.Latitude, 1e-9, "one document per user")
}

func TestLocationService_UpdateLocation_Rejections(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	require.NoError(t, env.users.UpdateLocationSharing(t.Context(), "u1", false))
	srv := env.locationService()

	_, err := srv.UpdateLocation(t.Context(), "u1", &usecase.LocationInput{})
	require.ErrorIs(t, err, domainerrors.ErrLocationSharingDisabled)

	_, err = srv.UpdateLocation(t.Context(), "ghost", &usecase.LocationInput{})
	require.ErrorIs(t, err, domainerrors.ErrUserNotFound)
	assert.Empty(t, env.publisher.drain())
}

func TestLocationService_GetLocation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	env.seedUser(t, "u3", "carol@example.com", "Carol", "")
	env.seedFriends(t, alice, bob)
	env.seedLocation(t, "u1", time.Minute)
	srv := env.locationService()

	_, err := srv.GetLocation(t.Context(), "u1", "u1")
	require.NoError(t, err, "owners see their own location")

	_, err = srv.GetLocation(t.Context(), "u2", "u1")
	require.NoError(t, err, "friends see the location")

	_, err = srv.GetLocation(t.Context(), "u3", "u1")
	require.ErrorIs(t, err, domainerrors.ErrNotFriends)

	_, err = srv.GetLocation(t.Context(), "u1", "u2")
	require.ErrorIs(t, err, domainerrors.ErrLocationNotFound)
}

func TestLocationService_FriendLocations_Distances(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	carol := env.seedUser(t, "u3", "carol@example.com", "Carol", "")
	env.seedFriends(t, alice, bob)
	env.seedFriends(t, alice, carol)

	require.NoError(t, env.locations.UpsertLocation(t.Context(), &entity.UserLocation{UserID: "u1", Latitude: 0, Longitude: 0, UpdatedAt: testNow}))
	require.NoError(t, env.locations.UpsertLocation(t.Context(), &entity.UserLocation{UserID: "u2", Latitude: 0, Longitude: 1, UpdatedAt: testNow.Add(-time.Minute)}))
	require.NoError(t, env.locations.UpsertLocation(t.Context(), &entity.UserLocation{UserID: "u3", Latitude: 1, Longitude: 0, UpdatedAt: testNow.Add(-25 * time.Hour)}))

	friends, err := env.locationService().FriendLocations(t.Context(), "u1")
	require.NoError(t, err)

	require.Len(t, friends, 1, "stale locations are not live")
	assert.Equal(t, "u2", friends[0].UserID)
	require.NotNil(t, friends[0].DistanceMeters)
	assert.InDelta(t, 111_195, *friends[0].DistanceMeters, 500, "one degree of longitude at the equator")
}

func TestLocationService_FriendLocations_NoOwnLocation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	bob := env.seedUser(t, "u2", "bob@example.com", "Bob", "")
	env.seedFriends(t, alice, bob)
	env.seedLocation(t, "u2", time.Minute)

	friends, err := env.locationService().FriendLocations(t.Context(), "u1")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Nil(t, friends[0].DistanceMeters)
}

func TestLocationService_FriendLocations_ManyFriends(t *testing.T) {
	env := newTestEnv(t)
	me := env.seedUser(t, "me", "me@example.com", "Me", "")
	for i := range repository.MaxLocationQueryIDs + 15 {
		friend := env.seedUser(t, fmt.Sprintf("f%02d", i), fmt.Sprintf("f%02d@example.com", i), "Friend", "")
		env.seedFriends(t, me, friend)
		env.seedLocation(t, friend.ID, time.Minute)
	}

	friends, err := env.locationService().FriendLocations(t.Context(), "me")
	require.NoError(t, err)
	assert.Len(t, friends, repository.MaxLocationQueryIDs+15)
}

func TestLocationService_WatchFriendLocations(t *testing.T) {
	env := newTestEnv(t)
	me := env.seedUser(t, "me", "me@example.com", "Me", "")
	for i := range repository.MaxLocationQueryIDs + 5 {
		friend := env.seedUser(t, fmt.Sprintf("f%02d", i), fmt.Sprintf("f%02d@example.com", i), "Friend", "")
		env.seedFriends(t, me, friend)
	}
	srv := env.locationService()

	sub := srv.WatchFriendLocations(t.Context(), "me")
	defer sub.Close()
	assert.Empty(t, next(t, sub))

	env.seedLocation(t, "f33", time.Minute)
	snapshot := next(t, sub)
	require.Len(t, snapshot, 1)
	assert.Equal(t, "f33", snapshot[0].UserID)
	assert.Nil(t, snapshot[0].DistanceMeters)

	env.seedLocation(t, "me", 0)
	snapshot = next(t, sub)
	require.Len(t, snapshot, 1)
	assert.NotNil(t, snapshot[0].DistanceMeters)
}

func TestLocationService_WatchFriendLocations_StoreError(t *testing.T) {
	env := newTestEnv(t)
	env.store.InjectFailure(memory.OpQueryFriendships, 0, errStore)

	sub := env.locationService().WatchFriendLocations(t.Context(), "me")
	defer sub.Close()

	_, open := <-sub.Updates()
	assert.False(t, open)
	assert.ErrorIs(t, sub.Err(), errStore)
}

func TestLocationService_DeleteLocation(t *testing.T) {
	env := newTestEnv(t)
	env.seedLocation(t, "u1", time.Minute)

	require.NoError(t, env.locationService().DeleteLocation(t.Context(), "u1"))
	_, err := env.locations.FindLocationByUserID(t.Context(), "u1")
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)
}
