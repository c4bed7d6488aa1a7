package translation

import (
	"sort"
	"sync"

	"github.com/rulekeep/rulekeep/internal/catalog"
)

// ProgressEvent reports run progress after every resolved work item. It
// carries counters only; observers re-derive per-entity detail by
// re-querying completeness, not from the event stream.
type ProgressEvent struct {
	Group     catalog.Group `json:"group"`
	Locale    string        `json:"locale"`
	Completed int           `json:"completed"`
	Total     int           `json:"total"`
}

// ProgressListener receives every event published during a run.
type ProgressListener func(ProgressEvent)

// Broadcaster fans progress events out to zero or more listeners. Delivery
// is synchronous and in publish order; each listener sees every event in
// subscription order. There is no buffering or replay, so a listener that
// subscribes mid-run only sees subsequent events and should reconcile by
// reading completeness state at subscribe time.
type Broadcaster struct {
	mu        sync.Mutex
	listeners map[uint64]ProgressListener
	nextID    uint64
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{listeners: make(map[uint64]ProgressListener)}
}

// Subscribe registers a listener and returns its unsubscribe function.
// Unsubscribing is idempotent and safe during a run; the listener stops
// receiving events published after the call returns.
func (b *Broadcaster) Subscribe(listener ProgressListener) func() {
	if listener == nil {
		return func() {}
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.listeners[id] = listener
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.listeners, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every current listener before returning.
func (b *Broadcaster) Publish(event ProgressEvent) {
	b.mu.Lock()
	ids := make([]uint64, 0, len(b.listeners))
	for id := range b.listeners {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	listeners := make([]ProgressListener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, b.listeners[id])
	}
	b.mu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Len reports the number of active listeners.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}
