package impl

import (
	"testing"
	"time"

	"friendlocator/internal/domain/constants"
	domainerrors "friendlocator/internal/domain/errors"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpsertProfile_Create(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.userService().UpsertProfile(t.Context(), "u1", &usecase.ProfileInput{
		Email:         " Alice@Example.com ",
		VerifiedEmail: "alice@example.com",
		DisplayName:   "Alice",
		FCMToken:      "tok-1",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", user.Email)
	assert.True(t, user.LocationSharingEnabled, "sharing defaults to on")
	assert.Equal(t, testNow, user.CreatedAt)

	events := env.publisher.drain()
	require.Len(t, events, 1)
	assert.Equal(t, constants.CollectionUsers, events[0].Collection)
	assert.Equal(t, service.DocumentCreated, events[0].Kind)
}

func TestUserService_UpsertProfile_KeepsServerFields(t *testing.T) {
	env := newTestEnv(t)
	existing := env.seedUser(t, "u1", "alice@example.com", "Alice", "tok-1")
	require.NoError(t, env.users.UpdateLocationSharing(t.Context(), "u1", false))

	user, err := env.userService().UpsertProfile(t.Context(), "u1", &usecase.ProfileInput{
		VerifiedEmail: "alice@example.com",
		DisplayName:   "Alice B.",
	})
	require.NoError(t, err)

	assert.Equal(t, "Alice B.", user.DisplayName)
	assert.Equal(t, existing.CreatedAt, user.CreatedAt)
	assert.False(t, user.LocationSharingEnabled)
	assert.Equal(t, "tok-1", user.FCMToken, "an empty token keeps the stored one")
}

func TestUserService_UpsertProfile_EmailComesFromToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "bob", "bob@example.com", "Bob", "tok-bob")

	_, err := env.userService().UpsertProfile(t.Context(), "mallory", &usecase.ProfileInput{
		Email:         "BOB@example.com",
		VerifiedEmail: "mallory@example.com",
		DisplayName:   "Bob",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailMismatch)

	_, err = env.userService().UpsertProfile(t.Context(), "mallory", &usecase.ProfileInput{
		Email:       "bob@example.com",
		DisplayName: "Bob",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailNotVerified)

	_, err = env.users.FindUserByID(t.Context(), "mallory")
	assert.ErrorIs(t, err, repository.ErrUserNotFound, "a rejected profile is not written")

	user, err := env.userService().UpsertProfile(t.Context(), "mallory", &usecase.ProfileInput{
		VerifiedEmail: "mallory@example.com",
		DisplayName:   "Bob",
	})
	require.NoError(t, err)
	assert.Equal(t, "mallory@example.com", user.Email)

	env.seedUser(t, "u1", "one@example.com", "One", "")
	request, err := env.friendshipService().SendFriendRequest(t.Context(), "u1", "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "bob", request.ToUserID)
}

func TestUserService_GetUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")

	user, err := env.userService().GetUser(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.DisplayName)

	_, err = env.userService().GetUser(t.Context(), "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_SearchByEmailPrefix(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "me", "ann@example.com", "Me", "secret")
	env.seedUser(t, "u1", "anna@example.com", "Anna", "secret")
	env.seedUser(t, "u2", "bob@example.com", "Bob", "")

	users, err := env.userService().SearchByEmailPrefix(t.Context(), "me", " AN")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
	assert.Empty(t, users[0].FCMToken, "tokens never leave through search")

	users, err = env.userService().SearchByEmailPrefix(t.Context(), "me", "")
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserService_SearchByEmailPrefix_Limit(t *testing.T) {
	env := newTestEnv(t)
	for i := range usecase.MaxUserSearchResults + 5 {
		env.seedUser(t, "u"+string(rune('a'+i)), "user"+string(rune('a'+i))+"@example.com", "User", "")
	}

	users, err := env.userService().SearchByEmailPrefix(t.Context(), "ua", "user")
	require.NoError(t, err)
	assert.Len(t, users, usecase.MaxUserSearchResults)
	for _, user := range users {
		assert.NotEqual(t, "ua", user.ID)
	}
}

func TestUserService_UpdateFCMToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "old")

	require.NoError(t, env.userService().UpdateFCMToken(t.Context(), "u1", "new"))
	user, err := env.users.FindUserByID(t.Context(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "new", user.FCMToken)

	assert.ErrorIs(t, env.userService().UpdateFCMToken(t.Context(), "ghost", "x"), domainerrors.ErrUserNotFound)
}

func TestUserService_SetLocationSharing_OffDeletesLocation(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")
	env.seedLocation(t, "u1", time.Minute)

	require.NoError(t, env.userService().SetLocationSharing(t.Context(), "u1", false))

	user, err := env.users.FindUserByID(t.Context(), "u1")
	require.NoError(t, err)
	assert.False(t, user.LocationSharingEnabled)
	_, err = env.locations.FindLocationByUserID(t.Context(), "u1")
	assert.ErrorIs(t, err, repository.ErrLocationNotFound)

	events := env.publisher.drain()
	require.Len(t, events, 1)
	assert.Equal(t, service.DocumentDeleted, events[0].Kind)

	require.NoError(t, env.userService().SetLocationSharing(t.Context(), "u1", true))
	assert.Empty(t, env.publisher.drain())
}

func TestUserService_WatchUser(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "u1", "alice@example.com", "Alice", "")

	sub := env.userService().WatchUser(t.Context(), "u1")
	defer sub.Close()
	assert.Equal(t, "Alice", next(t, sub).DisplayName)

	require.NoError(t, env.users.UpdateLocationSharing(t.Context(), "u1", false))
	assert.False(t, next(t, sub).LocationSharingEnabled)
}
