package reactive

import (
	"errors"
	"slices"
	"testing"
)

func TestListEmitsOncePerCall(t *testing.T) {
	l := NewList[string]()
	got := collectList(t, l)

	l.Add("A")
	l.AddAll() // empty bulk insert still notifies
	l.Remove("missing")
	if err := l.Insert(1, "B"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Clear()

	// initial snapshot + one emission per call
	if len(*got) != 6 {
		t.Fatalf("expected 6 emissions, got %d: %v", len(*got), *got)
	}
}

func TestListNativeReturnValues(t *testing.T) {
	l := NewListOf("A", "B", "C")

	if changed := l.AddAll("D", "E"); !changed {
		t.Fatalf("expected AddAll to report change")
	}
	previous, err := l.Set(0, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if previous != "A" {
		t.Fatalf("expected previous value A, got %q", previous)
	}
	removed, err := l.RemoveAt(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != "B" {
		t.Fatalf("expected removed value B, got %q", removed)
	}
	if !l.Remove("C") {
		t.Fatalf("expected Remove to report presence")
	}
	if l.Remove("C") {
		t.Fatalf("expected Remove of absent value to report false")
	}
	if got := l.Values(); !slices.Equal(got, []string{"a", "D", "E"}) {
		t.Fatalf("unexpected content: %v", got)
	}
}

func TestListOutOfBoundsStillNotifies(t *testing.T) {
	l := NewListOf(1, 2)
	got := collectList(t, l)

	if _, err := l.Set(5, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := l.Insert(-1, 9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := l.RemoveAt(2); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	// Failed positional calls still notify once each.
	if len(*got) != 4 {
		t.Fatalf("expected 4 emissions, got %d", len(*got))
	}
	if !slices.Equal((*got)[3], []int{1, 2}) {
		t.Fatalf("expected unchanged content, got %v", (*got)[3])
	}
}

func TestListRemoveAndRetainFunc(t *testing.T) {
	l := NewListOf(1, 2, 3, 4, 5, 6)

	if changed := l.RemoveFunc(func(v int) bool { return v%2 == 0 }); !changed {
		t.Fatalf("expected RemoveFunc to report change")
	}
	if got := l.Values(); !slices.Equal(got, []int{1, 3, 5}) {
		t.Fatalf("unexpected content after RemoveFunc: %v", got)
	}
	if changed := l.RetainFunc(func(v int) bool { return v > 1 }); !changed {
		t.Fatalf("expected RetainFunc to report change")
	}
	if got := l.Values(); !slices.Equal(got, []int{3, 5}) {
		t.Fatalf("unexpected content after RetainFunc: %v", got)
	}
	if changed := l.RetainFunc(func(int) bool { return true }); changed {
		t.Fatalf("expected no-op RetainFunc to report false")
	}
}

func TestListReads(t *testing.T) {
	l := NewListOf("x", "y", "z")

	if l.Len() != 3 {
		t.Fatalf("expected length 3, got %d", l.Len())
	}
	if v, ok := l.Get(1); !ok || v != "y" {
		t.Fatalf("expected Get(1) = y, got %q %v", v, ok)
	}
	if _, ok := l.Get(3); ok {
		t.Fatalf("expected Get(3) to miss")
	}
	if !l.Contains("z") || l.Contains("w") {
		t.Fatalf("unexpected Contains results")
	}
	if l.IndexOf("y") != 1 || l.IndexOf("w") != -1 {
		t.Fatalf("unexpected IndexOf results")
	}
}

func TestListSnapshotsAreImmutable(t *testing.T) {
	l := NewListOf("A", "B")
	snapshot := l.Flow().Value()
	snapshot[0] = "mutated"

	if v, _ := l.Get(0); v != "A" {
		t.Fatalf("expected live content to remain A, got %q", v)
	}
	if next := l.Flow().Value(); next[0] != "A" {
		t.Fatalf("expected later snapshots unaffected, got %q", next[0])
	}
}

func TestSubscriberMayMutateFacade(t *testing.T) {
	l := NewListOf("A")

	var got [][]string
	l.Flow().Subscribe(func(s []string) {
		got = append(got, s)
		if len(s) == 1 {
			l.Add("B")
		}
	})

	if len(got) != 2 {
		t.Fatalf("expected replay plus the nested commit, got %d: %v", len(got), got)
	}
	if !slices.Equal(got[1], []string{"A", "B"}) {
		t.Fatalf("expected nested mutation delivered, got %v", got[1])
	}
}

func TestSubscriberMayAttachViews(t *testing.T) {
	l := NewListOf("A")

	var view *View[Optional[string]]
	l.Flow().Subscribe(func([]string) {
		if view == nil {
			view = l.WatchIndex(0)
		}
	})
	defer view.Close()

	if v, ok := view.Value().Get(); !ok || v != "A" {
		t.Fatalf("expected view attached from subscriber to hold A, got %q %v", v, ok)
	}
}

func TestListInsertAllAtPosition(t *testing.T) {
	l := NewListOf("A", "D")
	if err := l.InsertAll(1, "B", "C"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := l.Values(); !slices.Equal(got, []string{"A", "B", "C", "D"}) {
		t.Fatalf("unexpected content: %v", got)
	}
}

func TestListEqualTracksContent(t *testing.T) {
	a := NewListOf(1, 2, 3)
	b := NewListOf(1, 2, 3)

	if !a.Equal(b) {
		t.Fatalf("expected equal content facades to be equal")
	}
	b.Add(4)
	if a.Equal(b) {
		t.Fatalf("expected facades to diverge after mutation")
	}
	if a.String() != "[1 2 3]" {
		t.Fatalf("unexpected String: %q", a.String())
	}
}

func TestNewListFromAdoptsBackingSlice(t *testing.T) {
	backing := []int{1, 2}
	l := NewListFrom(backing)

	l.Add(3)
	if got := l.Values(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Fatalf("unexpected content: %v", got)
	}
}
