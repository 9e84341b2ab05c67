// Package memory is an in-process document store with the same semantics as the
// Firestore driver: atomic transactions with reads before writes, live queries and
// per-operation failure injection. It backs local development and the usecase tests.
package memory

import (
	"context"
	"reflect"
	"sync"

	"friendlocator/internal/domain/entity"
	"friendlocator/internal/domain/repository"

	"github.com/google/uuid"
)

// Operation names accepted by InjectFailure.
const (
	OpFindUser            = "users.find"
	OpUpsertUser          = "users.upsert"
	OpUpdateUser          = "users.update"
	OpCreateFriendRequest = "friend_requests.create"
	OpFindFriendRequest   = "friend_requests.find"
	OpUpdateFriendRequest = "friend_requests.update"
	OpQueryFriendRequests = "friend_requests.query"
	OpCreateFriendship    = "friendships.create"
	OpQueryFriendships    = "friendships.query"
	OpDeleteFriendship    = "friendships.delete"
	OpUpsertLocation      = "locations.upsert"
	OpQueryLocations      = "locations.query"
	OpDeleteLocation      = "locations.delete"
	OpCreateAlert         = "alerts.create"
	OpFindAlert           = "alerts.find"
	OpUpdateAlert         = "alerts.update"
	OpDeleteAlert         = "alerts.delete"
)

type injectedFailure struct {
	skip int
	err  error
}

// Store holds every collection in memory.
type Store struct {
	mu          sync.RWMutex
	users       map[string]entity.User
	requests    map[string]entity.FriendRequest
	friendships map[string]entity.Friendship
	locations   map[string]entity.UserLocation
	alerts      map[string]entity.Alert
	// changed is closed and replaced on every commit to wake live queries.
	changed chan struct{}

	// txMu serializes transactions so staged writes never interleave.
	txMu sync.Mutex

	failMu   sync.Mutex
	failures map[string]*injectedFailure
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:       make(map[string]entity.User),
		requests:    make(map[string]entity.FriendRequest),
		friendships: make(map[string]entity.Friendship),
		locations:   make(map[string]entity.UserLocation),
		alerts:      make(map[string]entity.Alert),
		changed:     make(chan struct{}),
		failures:    make(map[string]*injectedFailure),
	}
}

// InjectFailure makes op fail with err once, after it has succeeded skip times.
func (s *Store) InjectFailure(op string, skip int, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()

	s.failures[op] = &injectedFailure{skip: skip, err: err}
}

func (s *Store) checkFailure(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()

	failure, ok := s.failures[op]
	if !ok {
		return nil
	}
	if failure.skip > 0 {
		failure.skip--

		return nil
	}
	delete(s.failures, op)

	return failure.err
}

// write applies mutate under the write lock and wakes live queries.
func (s *Store) write(mutate func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate()
	close(s.changed)
	s.changed = make(chan struct{})
}

// read runs query under the read lock and returns the channel that is closed on the
// next commit.
func (s *Store) read(query func()) <-chan struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query()

	return s.changed
}

func newID() string {
	return uuid.NewString()
}

// watch builds a live query. query is evaluated under the read lock; a snapshot equal
// to the previous one is not emitted again.
func watch[T any](ctx context.Context, s *Store, op string, query func() T) *repository.Subscription[T] {
	return repository.NewSubscription(ctx, func(ctx context.Context, emit repository.EmitFunc[T]) error {
		if err := s.checkFailure(op); err != nil {
			return err
		}

		var previous T
		first := true
		for {
			var snapshot T
			changed := s.read(func() { snapshot = query() })

			if first || !reflect.DeepEqual(previous, snapshot) {
				if !emit(snapshot) {
					return nil
				}
				previous = snapshot
				first = false
			}

			select {
			case <-ctx.Done():
				return nil
			case <-changed:
			}
		}
	})
}
