package reactive

import (
	"testing"

	"github.com/google/uuid"
)

func TestFlowReplaysCurrentValueOnSubscribe(t *testing.T) {
	flow := newFlow([]string{"A"})

	var got [][]string
	sub := flow.Subscribe(func(snapshot []string) {
		got = append(got, snapshot)
	})
	defer sub.Unsubscribe()

	if len(got) != 1 {
		t.Fatalf("expected synchronous replay, got %d emissions", len(got))
	}
	if len(got[0]) != 1 || got[0][0] != "A" {
		t.Fatalf("expected replay of current value, got %v", got[0])
	}
}

func TestFlowNotifiesInCommitOrder(t *testing.T) {
	flow := newFlow(0)

	var got []int
	sub := flow.Subscribe(func(v int) {
		got = append(got, v)
	})
	defer sub.Unsubscribe()

	flow.replace(1)
	flow.replace(2)
	flow.replace(3)

	want := []int{0, 1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("expected %d emissions, got %d: %v", len(want), len(got), got)
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("expected emission %d to be %d, got %d", i, v, got[i])
		}
	}
}

func TestFlowNotifiesSubscribersInSubscriptionOrder(t *testing.T) {
	flow := newFlow("start")

	var order []string
	first := flow.Subscribe(func(string) { order = append(order, "first") })
	second := flow.Subscribe(func(string) { order = append(order, "second") })
	defer first.Unsubscribe()
	defer second.Unsubscribe()

	order = nil
	flow.replace("next")

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("expected subscription order preserved, got %v", order)
	}
}

func TestFlowUnsubscribeStopsDelivery(t *testing.T) {
	flow := newFlow(0)

	count := 0
	sub := flow.Subscribe(func(int) { count++ })
	if flow.Subscribers() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", flow.Subscribers())
	}

	sub.Unsubscribe()
	sub.Unsubscribe() // idempotent

	if flow.Subscribers() != 0 {
		t.Fatalf("expected 0 subscribers after unsubscribe, got %d", flow.Subscribers())
	}

	flow.replace(1)
	if count != 1 {
		t.Fatalf("expected only the replay delivery, got %d", count)
	}
}

func TestFlowValueInsideSubscriber(t *testing.T) {
	flow := newFlow(1)

	var observed int
	sub := flow.Subscribe(func(v int) {
		observed = flow.Value()
	})
	defer sub.Unsubscribe()

	flow.replace(42)
	if observed != 42 {
		t.Fatalf("expected Value() inside subscriber to see committed value, got %d", observed)
	}
}

func TestFlowReentrantReplaceDeliversInOrder(t *testing.T) {
	flow := newFlow(0)

	var got []int
	sub := flow.Subscribe(func(v int) {
		got = append(got, v)
		if v == 1 {
			flow.replace(2)
		}
	})
	defer sub.Unsubscribe()

	flow.replace(1)

	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d emissions, got %d: %v", len(want), len(got), got)
	}
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("expected emission %d to be %d, got %d", i, v, got[i])
		}
	}
}

func TestSubscriptionIDs(t *testing.T) {
	flow := newFlow(0)

	first := flow.Subscribe(nil)
	second := flow.Subscribe(nil)
	defer first.Unsubscribe()
	defer second.Unsubscribe()

	if first.ID() == uuid.Nil || second.ID() == uuid.Nil {
		t.Fatalf("expected non-nil subscription IDs")
	}
	if first.ID() == second.ID() {
		t.Fatalf("expected distinct subscription IDs")
	}
}
