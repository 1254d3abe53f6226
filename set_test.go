package reactive

import (
	"slices"
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
)

func TestSetAddRemove(t *testing.T) {
	s := NewSet[string]()

	if !s.Add("A") {
		t.Fatalf("expected first Add to report insertion")
	}
	if s.Add("A") {
		t.Fatalf("expected duplicate Add to report false")
	}
	if !s.AddAll("B", "C") {
		t.Fatalf("expected AddAll to report insertion")
	}
	if s.AddAll("B", "C") {
		t.Fatalf("expected duplicate AddAll to report false")
	}
	if !s.Remove("B") {
		t.Fatalf("expected Remove to report presence")
	}
	if s.Remove("B") {
		t.Fatalf("expected Remove of absent value to report false")
	}
	if s.Len() != 2 || !s.Contains("A") || !s.Contains("C") {
		t.Fatalf("unexpected content: %v", s.Values())
	}
}

func TestSetEmitsOncePerCall(t *testing.T) {
	s := NewSet[int]()

	count := 0
	s.Flow().Subscribe(func(mapset.Set[int]) { count++ })

	s.Add(1)
	s.Add(1) // duplicate still notifies
	s.RemoveAll(1, 2)
	s.Clear()

	if count != 5 {
		t.Fatalf("expected 5 emissions, got %d", count)
	}
}

func TestSetSnapshotsAreIndependent(t *testing.T) {
	s := NewSetOf("A")
	snapshot := s.Flow().Value()

	s.Add("B")
	if snapshot.Contains("B") {
		t.Fatalf("expected earlier snapshot to be isolated from later mutations")
	}
	if !s.Flow().Value().Contains("B") {
		t.Fatalf("expected current snapshot to contain B")
	}

	mutated := s.Flow().Value()
	mutated.Add("C")
	if s.Flow().Value().Contains("C") {
		t.Fatalf("expected returned snapshot copies to be isolated from callers")
	}
}

func TestSetRemoveAndRetainFunc(t *testing.T) {
	s := NewSetOf(1, 2, 3, 4, 5)

	if !s.RemoveFunc(func(v int) bool { return v%2 == 0 }) {
		t.Fatalf("expected RemoveFunc to report change")
	}
	got := s.Values()
	slices.Sort(got)
	if !slices.Equal(got, []int{1, 3, 5}) {
		t.Fatalf("unexpected content after RemoveFunc: %v", got)
	}
	if !s.RetainFunc(func(v int) bool { return v < 5 }) {
		t.Fatalf("expected RetainFunc to report change")
	}
	got = s.Values()
	slices.Sort(got)
	if !slices.Equal(got, []int{1, 3}) {
		t.Fatalf("unexpected content after RetainFunc: %v", got)
	}
}

func TestSetBatchUpdateCollapses(t *testing.T) {
	s := NewSet[string]()

	count := 0
	s.Flow().Subscribe(func(mapset.Set[string]) { count++ })

	err := s.BatchUpdate(func(s *Set[string]) error {
		s.Add("A")
		s.Add("B")
		s.Remove("A")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if count != 2 {
		t.Fatalf("expected one emission for the batch, got %d total", count)
	}
	if !s.Contains("B") || s.Contains("A") {
		t.Fatalf("unexpected content: %v", s.Values())
	}
}

func TestSetEqualAndAdoption(t *testing.T) {
	a := NewSetOf(1, 2)
	b := NewSetFrom(mapset.NewThreadUnsafeSet(2, 1))

	if !a.Equal(b) {
		t.Fatalf("expected equal content facades to be equal")
	}
	b.Add(3)
	if a.Equal(b) {
		t.Fatalf("expected facades to diverge after mutation")
	}
}
