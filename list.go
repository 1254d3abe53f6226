package reactive

import (
	"context"
	"fmt"
	"slices"
)

// List is a reactive list facade. It owns a live backing slice and publishes
// an immutable snapshot of it through a Flow after every committed mutation.
// The backing slice is never exposed; reads pass through, mutations notify.
//
// List is not synchronized against concurrent mutation; callers with multiple
// writers must serialize access themselves.
type List[E comparable] struct {
	items    []E
	flow     *Flow[[]E]
	notifier *notifier[[]E]
	cfg      config
}

// NewList constructs an empty reactive list.
func NewList[E comparable](opts ...Option) *List[E] {
	return NewListFrom[E](nil, opts...)
}

// NewListFrom adopts items as the live backing slice. Ownership transfers to
// the facade; callers must not retain or mutate the slice afterwards.
func NewListFrom[E comparable](items []E, opts ...Option) *List[E] {
	l := &List[E]{items: items, cfg: applyOptions(opts)}
	l.flow = newSnapshotFlow(l.snapshot(), func(s []E) []E { return slices.Clone(s) })
	l.notifier = newNotifier("list", l.flow, l.snapshot, l.Len, l.cfg)
	return l
}

// NewListOf copies items into a fresh backing slice.
func NewListOf[E comparable](items ...E) *List[E] {
	return NewListFrom(slices.Clone(items))
}

func (l *List[E]) snapshot() []E {
	return slices.Clone(l.items)
}

// Flow returns the stream of full list snapshots.
func (l *List[E]) Flow() *Flow[[]E] {
	return l.flow
}

// Add appends value to the end of the list.
func (l *List[E]) Add(value E) {
	_ = l.notifier.run("add", false, func() error {
		l.items = append(l.items, value)
		return nil
	})
}

// AddAll appends values to the end of the list, reporting whether the list
// changed. An empty bulk insert still notifies once.
func (l *List[E]) AddAll(values ...E) bool {
	changed := false
	_ = l.notifier.run("add_all", false, func() error {
		l.items = append(l.items, values...)
		changed = len(values) > 0
		return nil
	})
	return changed
}

// Insert places value at index, shifting subsequent elements right. Valid
// indices are 0..Len inclusive.
func (l *List[E]) Insert(index int, value E) error {
	return l.notifier.run("insert", false, func() error {
		if index < 0 || index > len(l.items) {
			return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(l.items))
		}
		l.items = slices.Insert(l.items, index, value)
		return nil
	})
}

// InsertAll places values at index, shifting subsequent elements right.
func (l *List[E]) InsertAll(index int, values ...E) error {
	return l.notifier.run("insert_all", false, func() error {
		if index < 0 || index > len(l.items) {
			return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(l.items))
		}
		l.items = slices.Insert(l.items, index, values...)
		return nil
	})
}

// Set replaces the element at index and returns the previous value.
func (l *List[E]) Set(index int, value E) (E, error) {
	var previous E
	err := l.notifier.run("set", false, func() error {
		if index < 0 || index >= len(l.items) {
			return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(l.items))
		}
		previous = l.items[index]
		l.items[index] = value
		return nil
	})
	return previous, err
}

// Remove deletes the first occurrence of value, reporting whether it was
// present. A miss still notifies once.
func (l *List[E]) Remove(value E) bool {
	removed := false
	_ = l.notifier.run("remove", false, func() error {
		if i := slices.Index(l.items, value); i >= 0 {
			l.items = slices.Delete(l.items, i, i+1)
			removed = true
		}
		return nil
	})
	return removed
}

// RemoveAt deletes and returns the element at index.
func (l *List[E]) RemoveAt(index int) (E, error) {
	var removed E
	err := l.notifier.run("remove_at", false, func() error {
		if index < 0 || index >= len(l.items) {
			return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, len(l.items))
		}
		removed = l.items[index]
		l.items = slices.Delete(l.items, index, index+1)
		return nil
	})
	return removed, err
}

// RemoveFunc deletes every element matching pred, reporting whether any were
// removed.
func (l *List[E]) RemoveFunc(pred func(E) bool) bool {
	changed := false
	_ = l.notifier.run("remove_func", false, func() error {
		before := len(l.items)
		l.items = slices.DeleteFunc(l.items, pred)
		changed = len(l.items) != before
		return nil
	})
	return changed
}

// RetainFunc keeps only elements matching pred, reporting whether any were
// removed.
func (l *List[E]) RetainFunc(pred func(E) bool) bool {
	changed := false
	_ = l.notifier.run("retain_func", false, func() error {
		before := len(l.items)
		l.items = slices.DeleteFunc(l.items, func(value E) bool { return !pred(value) })
		changed = len(l.items) != before
		return nil
	})
	return changed
}

// Clear removes every element.
func (l *List[E]) Clear() {
	_ = l.notifier.run("clear", false, func() error {
		l.items = nil
		return nil
	})
}

// Get returns the element at index and whether the index is in bounds.
func (l *List[E]) Get(index int) (E, bool) {
	if index < 0 || index >= len(l.items) {
		var zero E
		return zero, false
	}
	return l.items[index], true
}

// Len returns the number of elements.
func (l *List[E]) Len() int {
	return len(l.items)
}

// Contains reports whether value is present.
func (l *List[E]) Contains(value E) bool {
	return slices.Contains(l.items, value)
}

// IndexOf returns the index of the first occurrence of value, or -1.
func (l *List[E]) IndexOf(value E) int {
	return slices.Index(l.items, value)
}

// Values returns a copy of the current content.
func (l *List[E]) Values() []E {
	return l.snapshot()
}

// BatchUpdate runs fn as one notification unit: however many mutations fn
// performs through the facade, exactly one snapshot is committed when the
// outermost batch finishes. Nested batches collapse into the outermost one.
// An error from fn propagates after the commit; mutations already applied
// remain applied.
func (l *List[E]) BatchUpdate(fn func(*List[E]) error) error {
	return l.notifier.run("batch", true, func() error {
		return fn(l)
	})
}

// BatchUpdateContext is BatchUpdate for callbacks that wait on external work
// between mutations. The single commit always fires when fn returns, even
// when fn aborts early because ctx was cancelled.
func (l *List[E]) BatchUpdateContext(ctx context.Context, fn func(context.Context, *List[E]) error) error {
	return l.notifier.runContext(ctx, "batch", func(ctx context.Context) error {
		return fn(ctx, l)
	})
}

// WatchIndex returns a derived view of the element at a fixed index, with the
// absent marker when the index is out of bounds for the current snapshot.
func (l *List[E]) WatchIndex(index int) *View[Optional[E]] {
	return watchIndex(l.flow, index)
}

// WatchRange returns a derived view of the sub-range [from, to) of each
// snapshot under the given mode. Invalid bounds produce an empty slice, never
// an error.
func (l *List[E]) WatchRange(from, to int, mode RangeMode) *View[[]E] {
	return watchRange(l.flow, from, to, mode)
}

// WatchExpr returns a derived view whose value is expression evaluated
// against every committed snapshot, with deep-equality suppression.
func (l *List[E]) WatchExpr(expression string) (*View[any], error) {
	return watchExpr(&l.cfg, "list", l.flow, listBindings[E], expression)
}

// Evaluate runs expression once against the current snapshot.
func (l *List[E]) Evaluate(expression string) (Response[any], error) {
	return evaluateExpression(&l.cfg, "list", listBindings(l.flow.Value()), EvalContext{}, expression)
}

// EvaluateWith runs expression using ctx, falling back to the current
// snapshot bindings when ctx.Snapshot is nil.
func (l *List[E]) EvaluateWith(ctx EvalContext, expression string) (Response[any], error) {
	return evaluateExpression(&l.cfg, "list", listBindings(l.flow.Value()), ctx, expression)
}

// Equal reports whether both facades currently hold the same content in the
// same order. Equality tracks the live content, not facade identity.
func (l *List[E]) Equal(other *List[E]) bool {
	if l == nil || other == nil {
		return l == other
	}
	return slices.Equal(l.items, other.items)
}

// String renders the current content.
func (l *List[E]) String() string {
	return fmt.Sprint(l.items)
}

func listBindings[E comparable](snapshot []E) map[string]any {
	items := make([]any, len(snapshot))
	for i, value := range snapshot {
		items[i] = value
	}
	return map[string]any{
		"items": items,
		"size":  len(snapshot),
	}
}
