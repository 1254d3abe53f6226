package reactive

import "slices"

// Optional represents a value that may be absent, used by derived views where
// absence (missing key, out-of-bounds index) is itself a valid emitted value.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None returns the absent marker.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// Present reports whether a value is held.
func (o Optional[T]) Present() bool {
	return o.present
}

// OrZero returns the value, or the zero value when absent.
func (o Optional[T]) OrZero() T {
	return o.value
}

// RangeMode selects how WatchRange treats bounds that fall outside the
// current snapshot.
type RangeMode int

const (
	// RangeStrict yields an empty slice whenever the fixed bounds are not
	// fully valid for the current snapshot.
	RangeStrict RangeMode = iota
	// RangeLenient clamps both bounds into the snapshot before slicing;
	// inverted bounds after clamping yield an empty slice.
	RangeLenient
)

// View is a derived latest-value stream computed from a parent Flow through a
// fixed projection with duplicate suppression: a new value is emitted only
// when it differs from the previously emitted one.
type View[T any] struct {
	flow *Flow[T]
	stop func()
}

// Value returns the current derived value.
func (v *View[T]) Value() T {
	return v.flow.Value()
}

// Subscribe registers fn on the derived stream; the current derived value is
// delivered synchronously first.
func (v *View[T]) Subscribe(fn func(T)) *Subscription[T] {
	return v.flow.Subscribe(fn)
}

// Close detaches the view from its parent stream. Existing subscribers keep
// the last derived value but receive no further emissions.
func (v *View[T]) Close() {
	if v.stop != nil {
		v.stop()
	}
}

// derive builds a View by projecting every parent snapshot and suppressing
// consecutive equal results. The emitted flag is the not-yet-emitted
// sentinel; it is distinct from any projected value, so an initial absent
// projection still seeds the view.
func derive[S, T any](parent *Flow[S], project func(S) T, equal func(T, T) bool) *View[T] {
	view := &View[T]{}
	var last T
	emitted := false
	sub := parent.Subscribe(func(snapshot S) {
		next := project(snapshot)
		if emitted && equal(last, next) {
			return
		}
		last = next
		emitted = true
		if view.flow == nil {
			// Seeded by the synchronous replay during Subscribe.
			view.flow = newFlow(next)
			return
		}
		view.flow.replace(next)
	})
	view.stop = sub.Unsubscribe
	return view
}

// watchIndex projects the element at a fixed index, or the absent marker when
// the index is out of bounds for a given snapshot.
func watchIndex[E comparable](parent *Flow[[]E], index int) *View[Optional[E]] {
	return derive(parent, func(snapshot []E) Optional[E] {
		if index < 0 || index >= len(snapshot) {
			return None[E]()
		}
		return Some(snapshot[index])
	}, func(a, b Optional[E]) bool { return a == b })
}

// watchKey projects the value mapped to a fixed key, or the absent marker
// when the key is missing from a given snapshot.
func watchKey[K comparable, V comparable](parent *Flow[map[K]V], key K) *View[Optional[V]] {
	return derive(parent, func(snapshot map[K]V) Optional[V] {
		value, ok := snapshot[key]
		if !ok {
			return None[V]()
		}
		return Some(value)
	}, func(a, b Optional[V]) bool { return a == b })
}

// watchRange projects the sub-range [from, to) of each snapshot under the
// given mode. Invalid bounds never error; they produce an empty slice.
func watchRange[E comparable](parent *Flow[[]E], from, to int, mode RangeMode) *View[[]E] {
	return derive(parent, func(snapshot []E) []E {
		return sliceRange(snapshot, from, to, mode)
	}, func(a, b []E) bool { return slices.Equal(a, b) })
}

func sliceRange[E any](snapshot []E, from, to int, mode RangeMode) []E {
	size := len(snapshot)
	switch mode {
	case RangeLenient:
		from = clamp(from, 0, size)
		to = clamp(to, 0, size)
		if from > to {
			return []E{}
		}
	default:
		if from < 0 || from > to || to > size {
			return []E{}
		}
	}
	return slices.Clone(snapshot[from:to])
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
