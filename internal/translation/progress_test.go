package translation

import (
	"testing"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

func TestBroadcasterDeliversInPublishOrder(t *testing.T) {
	broadcaster := NewBroadcaster()

	var first []int
	var second []int
	unsubFirst := broadcaster.Subscribe(func(event ProgressEvent) {
		first = append(first, event.Completed)
	})
	defer unsubFirst()
	unsubSecond := broadcaster.Subscribe(func(event ProgressEvent) {
		second = append(second, event.Completed)
	})
	defer unsubSecond()

	for i := 0; i <= 3; i++ {
		broadcaster.Publish(ProgressEvent{Group: catalog.GroupBook, Locale: "es", Completed: i, Total: 3})
	}

	want := []int{0, 1, 2, 3}
	for name, got := range map[string][]int{"first": first, "second": second} {
		if len(got) != len(want) {
			t.Fatalf("%s listener saw %d events, want %d", name, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("%s listener event %d = %d, want %d", name, i, got[i], want[i])
			}
		}
	}
}

func TestBroadcasterUnsubscribeStopsDelivery(t *testing.T) {
	broadcaster := NewBroadcaster()

	count := 0
	unsubscribe := broadcaster.Subscribe(func(ProgressEvent) { count++ })

	broadcaster.Publish(ProgressEvent{Completed: 1, Total: 2})
	unsubscribe()
	unsubscribe() // idempotent
	broadcaster.Publish(ProgressEvent{Completed: 2, Total: 2})

	if count != 1 {
		t.Fatalf("listener saw %d events after unsubscribe, want 1", count)
	}
	if broadcaster.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", broadcaster.Len())
	}
}

func TestBroadcasterLateSubscriberSeesOnlySubsequentEvents(t *testing.T) {
	broadcaster := NewBroadcaster()

	broadcaster.Publish(ProgressEvent{Completed: 1, Total: 2})

	var seen []int
	unsubscribe := broadcaster.Subscribe(func(event ProgressEvent) {
		seen = append(seen, event.Completed)
	})
	defer unsubscribe()

	broadcaster.Publish(ProgressEvent{Completed: 2, Total: 2})

	if len(seen) != 1 || seen[0] != 2 {
		t.Fatalf("late subscriber saw %v, want [2]", seen)
	}
}

func TestBroadcasterNilListener(t *testing.T) {
	broadcaster := NewBroadcaster()
	unsubscribe := broadcaster.Subscribe(nil)
	unsubscribe()
	broadcaster.Publish(ProgressEvent{Completed: 1, Total: 1})
	if broadcaster.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", broadcaster.Len())
	}
}
