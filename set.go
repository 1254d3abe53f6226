package reactive

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// Set is a reactive set facade backed by a golang-set container. Snapshots
// are cloned sets; subscribers must treat them as immutable.
//
// The backing set is thread-unsafe on purpose: the facade assumes a single
// writer, matching the rest of the package.
type Set[E comparable] struct {
	items    mapset.Set[E]
	flow     *Flow[mapset.Set[E]]
	notifier *notifier[mapset.Set[E]]
	cfg      config
}

// NewSet constructs an empty reactive set.
func NewSet[E comparable](opts ...Option) *Set[E] {
	return NewSetFrom(mapset.NewThreadUnsafeSet[E](), opts...)
}

// NewSetFrom adopts items as the live backing set. Ownership transfers to the
// facade; callers must not retain or mutate the set afterwards.
func NewSetFrom[E comparable](items mapset.Set[E], opts ...Option) *Set[E] {
	if items == nil {
		items = mapset.NewThreadUnsafeSet[E]()
	}
	s := &Set[E]{items: items, cfg: applyOptions(opts)}
	s.flow = newSnapshotFlow(s.snapshot(), func(s mapset.Set[E]) mapset.Set[E] { return s.Clone() })
	s.notifier = newNotifier("set", s.flow, s.snapshot, s.Len, s.cfg)
	return s
}

// NewSetOf copies values into a fresh backing set.
func NewSetOf[E comparable](values ...E) *Set[E] {
	return NewSetFrom(mapset.NewThreadUnsafeSet(values...))
}

func (s *Set[E]) snapshot() mapset.Set[E] {
	return s.items.Clone()
}

// Flow returns the stream of full set snapshots.
func (s *Set[E]) Flow() *Flow[mapset.Set[E]] {
	return s.flow
}

// Add inserts value, reporting whether it was absent before. Adding a value
// already present still notifies once.
func (s *Set[E]) Add(value E) bool {
	added := false
	_ = s.notifier.run("add", false, func() error {
		added = s.items.Add(value)
		return nil
	})
	return added
}

// AddAll inserts values, reporting whether any were absent before.
func (s *Set[E]) AddAll(values ...E) bool {
	added := false
	_ = s.notifier.run("add_all", false, func() error {
		for _, value := range values {
			if s.items.Add(value) {
				added = true
			}
		}
		return nil
	})
	return added
}

// Remove deletes value, reporting whether it was present.
func (s *Set[E]) Remove(value E) bool {
	removed := false
	_ = s.notifier.run("remove", false, func() error {
		removed = s.items.Contains(value)
		s.items.Remove(value)
		return nil
	})
	return removed
}

// RemoveAll deletes values, reporting whether any were present.
func (s *Set[E]) RemoveAll(values ...E) bool {
	removed := false
	_ = s.notifier.run("remove_all", false, func() error {
		for _, value := range values {
			if s.items.Contains(value) {
				removed = true
			}
			s.items.Remove(value)
		}
		return nil
	})
	return removed
}

// RemoveFunc deletes every element matching pred, reporting whether any were
// removed.
func (s *Set[E]) RemoveFunc(pred func(E) bool) bool {
	removed := false
	_ = s.notifier.run("remove_func", false, func() error {
		for _, value := range s.items.ToSlice() {
			if pred(value) {
				s.items.Remove(value)
				removed = true
			}
		}
		return nil
	})
	return removed
}

// RetainFunc keeps only elements matching pred, reporting whether any were
// removed.
func (s *Set[E]) RetainFunc(pred func(E) bool) bool {
	removed := false
	_ = s.notifier.run("retain_func", false, func() error {
		for _, value := range s.items.ToSlice() {
			if !pred(value) {
				s.items.Remove(value)
				removed = true
			}
		}
		return nil
	})
	return removed
}

// Clear removes every element.
func (s *Set[E]) Clear() {
	_ = s.notifier.run("clear", false, func() error {
		s.items.Clear()
		return nil
	})
}

// Contains reports whether value is present.
func (s *Set[E]) Contains(value E) bool {
	return s.items.Contains(value)
}

// Len returns the number of elements.
func (s *Set[E]) Len() int {
	return s.items.Cardinality()
}

// Values returns the current content as a slice in unspecified order.
func (s *Set[E]) Values() []E {
	return s.items.ToSlice()
}

// BatchUpdate runs fn as one notification unit; see List.BatchUpdate.
func (s *Set[E]) BatchUpdate(fn func(*Set[E]) error) error {
	return s.notifier.run("batch", true, func() error {
		return fn(s)
	})
}

// BatchUpdateContext is BatchUpdate for callbacks that wait on external work
// between mutations; the single commit always fires when fn returns.
func (s *Set[E]) BatchUpdateContext(ctx context.Context, fn func(context.Context, *Set[E]) error) error {
	return s.notifier.runContext(ctx, "batch", func(ctx context.Context) error {
		return fn(ctx, s)
	})
}

// WatchExpr returns a derived view whose value is expression evaluated
// against every committed snapshot, with deep-equality suppression.
func (s *Set[E]) WatchExpr(expression string) (*View[any], error) {
	return watchExpr(&s.cfg, "set", s.flow, setBindings[E], expression)
}

// Evaluate runs expression once against the current snapshot.
func (s *Set[E]) Evaluate(expression string) (Response[any], error) {
	return evaluateExpression(&s.cfg, "set", setBindings(s.flow.Value()), EvalContext{}, expression)
}

// EvaluateWith runs expression using ctx, falling back to the current
// snapshot bindings when ctx.Snapshot is nil.
func (s *Set[E]) EvaluateWith(ctx EvalContext, expression string) (Response[any], error) {
	return evaluateExpression(&s.cfg, "set", setBindings(s.flow.Value()), ctx, expression)
}

// Equal reports whether both facades currently hold the same elements.
func (s *Set[E]) Equal(other *Set[E]) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.items.Equal(other.items)
}

// String renders the current content.
func (s *Set[E]) String() string {
	return fmt.Sprint(s.items)
}

func setBindings[E comparable](snapshot mapset.Set[E]) map[string]any {
	values := snapshot.ToSlice()
	items := make([]any, len(values))
	for i, value := range values {
		items[i] = value
	}
	return map[string]any{
		"items": items,
		"size":  len(values),
	}
}
