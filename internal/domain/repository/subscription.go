package repository

import (
	"context"
	"sync"
)

// Subscription is a handle on a live query. Every time the query result changes the
// producer delivers a fresh snapshot on Updates. Close stops the producer; once Close
// returns the Updates channel is closed and no further snapshot is delivered.
type Subscription[T any] struct {
	updates chan T
	cancel  context.CancelFunc
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// EmitFunc hands a snapshot to the subscriber. It returns false once the subscription
// is closed, after which the producer must return.
type EmitFunc[T any] func(snapshot T) bool

// NewSubscription starts run in its own goroutine. run should emit an initial snapshot,
// then one per change, and return when ctx is done or emit returns false. A non-nil
// error returned before the subscription is closed is reported by Err.
func NewSubscription[T any](ctx context.Context, run func(ctx context.Context, emit EmitFunc[T]) error) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		updates: make(chan T),
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go func() {
		defer close(sub.done)
		defer close(sub.updates)

		err := run(ctx, func(snapshot T) bool {
			if ctx.Err() != nil {
				return false
			}
			select {
			case sub.updates <- snapshot:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			sub.mu.Lock()
			sub.err = err
			sub.mu.Unlock()
		}
	}()

	return sub
}

// FailedSubscription returns a subscription that terminates immediately with err.
func FailedSubscription[T any](ctx context.Context, err error) *Subscription[T] {
	return NewSubscription(ctx, func(context.Context, EmitFunc[T]) error {
		return err
	})
}

// Updates returns the channel of snapshots. It is closed when the subscription ends.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

// Done is closed once the producer has stopped.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Err returns the error that ended the subscription, if any. It is only meaningful
// after Updates has been closed.
func (s *Subscription[T]) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Close stops the subscription and waits for the producer to exit. It is safe to call
// more than once.
func (s *Subscription[T]) Close() {
	s.cancel()
	<-s.done
}
