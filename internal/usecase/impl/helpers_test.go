package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"
	"friendlocator/internal/domain/service"
	"friendlocator/internal/infra/persistence/memory"

	"github.com/stretchr/testify/require"
)

// testNow is the fixed clock of every service under test.
var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// recordingPublisher keeps published events so tests can replay them into the fan-out.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.DocumentEvent
	err    error
}

func (p *recordingPublisher) PublishDocumentEvent(_ context.Context, event *service.DocumentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

// drain returns the events published since the last call.
func (p *recordingPublisher) drain() []*service.DocumentEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	events := p.events
	p.events = nil

	return events
}

// testEnv is an in-memory store with every repository built over it.
type testEnv struct {
	store       *memory.Store
	txManager   repository.TransactionManager
	users       repository.UserRepository
	requests    repository.FriendRequestRepository
	friendships repository.FriendshipRepository
	locations   repository.LocationRepository
	alerts      repository.AlertRepository
	publisher   *recordingPublisher
	logger      *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()

	return &testEnv{
		store:       store,
		txManager:   memory.NewTransactionManager(store),
		users:       memory.NewUserRepository(store),
		requests:    memory.NewFriendRequestRepository(store),
		friendships: memory.NewFriendshipRepository(store),
		locations:   memory.NewLocationRepository(store),
		alerts:      memory.NewAlertRepository(store),
		publisher:   &recordingPublisher{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (env *testEnv) friendshipService() *friendshipService {
	srv := NewFriendshipService(FriendshipServiceParams{
		TxManager:   env.txManager,
		UserRepo:    env.users,
		RequestRepo: env.requests,
		FriendRepo:  env.friendships,
		Publisher:   env.publisher,
		Logger:      env.logger,
	}).(*friendshipService)
	srv.now = func() time.Time { return testNow }

	return srv
}

func (env *testEnv) userService() *userService {
	srv := NewUserService(UserServiceParams{
		UserRepo:     env.users,
		LocationRepo: env.locations,
		Publisher:    env.publisher,
		Logger:       env.logger,
	}).(*userService)
	srv.now = func() time.Time { return testNow }

	return srv
}

func (env *testEnv) locationService() *locationService {
	srv := NewLocationService(LocationServiceParams{
		UserRepo:     env.users,
		FriendRepo:   env.friendships,
		LocationRepo: env.locations,
		Publisher:    env.publisher,
		Logger:       env.logger,
	}).(*locationService)
	srv.now = func() time.Time { return testNow }

	return srv
}

func (env *testEnv) alertService() *alertService {
	srv := NewAlertService(AlertServiceParams{
		UserRepo:   env.users,
		FriendRepo: env.friendships,
		AlertRepo:  env.alerts,
		Publisher:  env.publisher,
		Logger:     env.logger,
	}).(*alertService)
	srv.now = func() time.Time { return testNow }

	return srv
}

func (env *testEnv) fanoutService(push service.PushService, deduper service.EventDeduper) *fanoutService {
	srv := NewFanoutService(FanoutServiceParams{
		UserRepo: env.users,
		Push:     push,
		Deduper:  deduper,
		Logger:   env.logger,
	}).(*fanoutService)
	srv.now = func() time.Time { return testNow }

	return srv
}

func (env *testEnv) cleanupService() *cleanupService {
	srv := NewCleanupService(CleanupServiceParams{
		TxManager: env.txManager,
		Logger:    env.logger,
	}).(*cleanupService)
	srv.now = func() time.Time { return testNow }

	return srv
}

// seedUser stores a user with sharing enabled.
func (env *testEnv) seedUser(t *testing.T, id, email, name, token string) *entity.User {
	t.Helper()

	user := &entity.User{
		ID:                     id,
		Email:                  email,
		DisplayName:            name,
		ProfilePictureURL:      "https://img.example.com/" + id + ".png",
		FCMToken:               token,
		LocationSharingEnabled: true,
		CreatedAt:              testNow.Add(-time.Hour),
		LastActive:             testNow.Add(-time.Hour),
	}
	require.NoError(t, env.users.UpsertUser(t.Context(), user))

	return user
}

// seedFriends stores both directions of a friendship.
func (env *testEnv) seedFriends(t *testing.T, a, b *entity.User) {
	t.Helper()

	require.NoError(t, env.friendships.CreateFriendship(t.Context(), entity.NewFriendship(a.ID, b, testNow)))
	require.NoError(t, env.friendships.CreateFriendship(t.Context(), entity.NewFriendship(b.ID, a, testNow)))
}

func (env *testEnv) friendIDs(t *testing.T, userID string) []string {
	t.Helper()

	ids, err := env.friendships.ListFriendIDs(t.Context(), userID)
	require.NoError(t, err)

	return ids
}

// next waits for the next snapshot of sub.
func next[T any](t *testing.T, sub *repository.Subscription[T]) T {
	t.Helper()

	select {
	case snapshot, ok := <-sub.Updates():
		require.True(t, ok, "subscription closed: %v", sub.Err())

		return snapshot
	case <-time.After(2 * time.Second):
		require.FailNow(t, "timed out waiting for snapshot")
	}

	var zero T

	return zero
}
