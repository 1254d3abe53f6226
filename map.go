package reactive

import (
	"context"
	"fmt"
	"maps"
)

// Map is a reactive map facade. It owns a live backing map and publishes an
// immutable snapshot of it through a Flow after every committed mutation.
//
// Map is not synchronized against concurrent mutation; callers with multiple
// writers must serialize access themselves.
type Map[K comparable, V comparable] struct {
	entries  map[K]V
	flow     *Flow[map[K]V]
	notifier *notifier[map[K]V]
	cfg      config
}

// NewMap constructs an empty reactive map.
func NewMap[K comparable, V comparable](opts ...Option) *Map[K, V] {
	return NewMapFrom(map[K]V{}, opts...)
}

// NewMapFrom adopts entries as the live backing map. Ownership transfers to
// the facade; callers must not retain or mutate the map afterwards.
func NewMapFrom[K comparable, V comparable](entries map[K]V, opts ...Option) *Map[K, V] {
	if entries == nil {
		entries = map[K]V{}
	}
	m := &Map[K, V]{entries: entries, cfg: applyOptions(opts)}
	m.flow = newSnapshotFlow(m.snapshot(), func(s map[K]V) map[K]V { return maps.Clone(s) })
	m.notifier = newNotifier("map", m.flow, m.snapshot, m.Len, m.cfg)
	return m
}

// NewMapOf copies entries into a fresh backing map.
func NewMapOf[K comparable, V comparable](entries map[K]V, opts ...Option) *Map[K, V] {
	return NewMapFrom(maps.Clone(entries), opts...)
}

func (m *Map[K, V]) snapshot() map[K]V {
	return maps.Clone(m.entries)
}

// Flow returns the stream of full map snapshots.
func (m *Map[K, V]) Flow() *Flow[map[K]V] {
	return m.flow
}

// Put maps key to value, returning the previous value and whether one was
// replaced. Writing an unchanged value still notifies: notification is per
// committed call, not per content delta.
func (m *Map[K, V]) Put(key K, value V) (V, bool) {
	var previous V
	replaced := false
	_ = m.notifier.run("put", false, func() error {
		previous, replaced = m.entries[key]
		m.entries[key] = value
		return nil
	})
	return previous, replaced
}

// PutAll copies every entry of source into the map.
func (m *Map[K, V]) PutAll(source map[K]V) {
	_ = m.notifier.run("put_all", false, func() error {
		maps.Copy(m.entries, source)
		return nil
	})
}

// Delete removes key, returning the removed value and whether it was present.
// A miss still notifies once.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	var removed V
	present := false
	_ = m.notifier.run("delete", false, func() error {
		removed, present = m.entries[key]
		delete(m.entries, key)
		return nil
	})
	return removed, present
}

// RemoveFunc deletes every entry matching pred, reporting whether any were
// removed.
func (m *Map[K, V]) RemoveFunc(pred func(K, V) bool) bool {
	removed := false
	_ = m.notifier.run("remove_func", false, func() error {
		for key, value := range m.entries {
			if pred(key, value) {
				delete(m.entries, key)
				removed = true
			}
		}
		return nil
	})
	return removed
}

// RetainFunc keeps only entries matching pred, reporting whether any were
// removed.
func (m *Map[K, V]) RetainFunc(pred func(K, V) bool) bool {
	removed := false
	_ = m.notifier.run("retain_func", false, func() error {
		for key, value := range m.entries {
			if !pred(key, value) {
				delete(m.entries, key)
				removed = true
			}
		}
		return nil
	})
	return removed
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	_ = m.notifier.run("clear", false, func() error {
		clear(m.entries)
		return nil
	})
}

// Get returns the value mapped to key and whether the key is present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	value, ok := m.entries[key]
	return value, ok
}

// Has reports whether key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return len(m.entries)
}

// Keys returns the current keys in unspecified order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys
}

// Values returns the current values in unspecified order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, len(m.entries))
	for _, value := range m.entries {
		values = append(values, value)
	}
	return values
}

// BatchUpdate runs fn as one notification unit; see List.BatchUpdate.
func (m *Map[K, V]) BatchUpdate(fn func(*Map[K, V]) error) error {
	return m.notifier.run("batch", true, func() error {
		return fn(m)
	})
}

// BatchUpdateContext is BatchUpdate for callbacks that wait on external work
// between mutations; the single commit always fires when fn returns.
func (m *Map[K, V]) BatchUpdateContext(ctx context.Context, fn func(context.Context, *Map[K, V]) error) error {
	return m.notifier.runContext(ctx, "batch", func(ctx context.Context) error {
		return fn(ctx, m)
	})
}

// WatchKey returns a derived view of the value mapped to a fixed key, with
// the absent marker when the key is missing from the current snapshot.
func (m *Map[K, V]) WatchKey(key K) *View[Optional[V]] {
	return watchKey(m.flow, key)
}

// WatchExpr returns a derived view whose value is expression evaluated
// against every committed snapshot, with deep-equality suppression.
func (m *Map[K, V]) WatchExpr(expression string) (*View[any], error) {
	return watchExpr(&m.cfg, "map", m.flow, mapBindings[K, V], expression)
}

// Evaluate runs expression once against the current snapshot.
func (m *Map[K, V]) Evaluate(expression string) (Response[any], error) {
	return evaluateExpression(&m.cfg, "map", mapBindings(m.flow.Value()), EvalContext{}, expression)
}

// EvaluateWith runs expression using ctx, falling back to the current
// snapshot bindings when ctx.Snapshot is nil.
func (m *Map[K, V]) EvaluateWith(ctx EvalContext, expression string) (Response[any], error) {
	return evaluateExpression(&m.cfg, "map", mapBindings(m.flow.Value()), ctx, expression)
}

// Equal reports whether both facades currently hold the same entries.
func (m *Map[K, V]) Equal(other *Map[K, V]) bool {
	if m == nil || other == nil {
		return m == other
	}
	return maps.Equal(m.entries, other.entries)
}

// String renders the current content.
func (m *Map[K, V]) String() string {
	return fmt.Sprint(m.entries)
}

func mapBindings[K comparable, V comparable](snapshot map[K]V) map[string]any {
	entries := make(map[any]any, len(snapshot))
	keys := make([]any, 0, len(snapshot))
	for key, value := range snapshot {
		entries[key] = value
		keys = append(keys, key)
	}
	return map[string]any{
		"entries": entries,
		"keys":    keys,
		"size":    len(snapshot),
	}
}
