package reactive

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Flow is a latest-value observable stream: it always holds a current
// snapshot, replays it synchronously to every new subscriber, and fans out
// each committed snapshot to all subscribers in commit order.
type Flow[T any] struct {
	mu    sync.RWMutex
	value T
	subs  []*Subscription[T]
	// clone, when set, copies the stored snapshot on every read so callers
	// can never mutate the committed value through an accessor.
	clone func(T) T
	// pending and emitting serialize fan-out: a replace that arrives while a
	// delivery loop is running (from another goroutine, or reentrantly from a
	// subscriber callback) is queued and drained by the active loop.
	pending  []T
	emitting bool
}

func newFlow[T any](initial T) *Flow[T] {
	return &Flow[T]{value: initial}
}

func newSnapshotFlow[T any](initial T, clone func(T) T) *Flow[T] {
	return &Flow[T]{value: initial, clone: clone}
}

func (f *Flow[T]) read(value T) T {
	if f.clone != nil {
		return f.clone(value)
	}
	return value
}

// Value returns the most recently committed snapshot. Facade flows hand out a
// defensive copy; mutating it never affects the committed snapshot. It is safe
// to call from inside a subscriber.
func (f *Flow[T]) Value() T {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.read(f.value)
}

// Subscribe registers fn and synchronously delivers the current snapshot
// before returning. Afterwards fn receives every committed snapshot, in
// commit order, until the returned subscription is cancelled. No lock is held
// while fn runs, so callbacks may read the flow, attach further subscribers,
// or mutate the source facade.
func (f *Flow[T]) Subscribe(fn func(T)) *Subscription[T] {
	sub := &Subscription[T]{id: uuid.New(), fn: fn, flow: f}

	f.mu.Lock()
	f.subs = append(f.subs, sub)
	current := f.read(f.value)
	f.mu.Unlock()

	if fn != nil {
		fn(current)
	}
	return sub
}

// Subscribers reports the number of active subscriptions.
func (f *Flow[T]) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// replace installs value as the current snapshot and notifies all current
// subscribers. Deliveries happen outside the lock; when a subscriber commits
// a further replace reentrantly, that snapshot is queued and delivered after
// the in-flight fan-out, preserving commit order.
func (f *Flow[T]) replace(value T) {
	f.mu.Lock()
	f.value = value
	f.pending = append(f.pending, value)
	if f.emitting {
		f.mu.Unlock()
		return
	}
	f.emitting = true
	for len(f.pending) > 0 {
		next := f.pending[0]
		f.pending = f.pending[1:]
		subs := slices.Clone(f.subs)
		f.mu.Unlock()
		for _, sub := range subs {
			if sub.fn != nil {
				sub.fn(next)
			}
		}
		f.mu.Lock()
	}
	f.emitting = false
	f.mu.Unlock()
}

// Subscription represents one registered subscriber on a Flow.
type Subscription[T any] struct {
	id   uuid.UUID
	fn   func(T)
	flow *Flow[T]
	once sync.Once
}

// ID returns the unique identifier assigned to this subscription.
func (s *Subscription[T]) ID() uuid.UUID {
	if s == nil {
		return uuid.Nil
	}
	return s.id
}

// Unsubscribe removes the subscriber from its flow. It is idempotent; a
// notification already in flight may still be delivered once.
func (s *Subscription[T]) Unsubscribe() {
	if s == nil || s.flow == nil {
		return
	}
	s.once.Do(func() {
		s.flow.mu.Lock()
		s.flow.subs = slices.DeleteFunc(s.flow.subs, func(other *Subscription[T]) bool {
			return other.id == s.id
		})
		s.flow.mu.Unlock()
	})
}
