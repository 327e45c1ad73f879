package store

import (
	"sync"
	"time"
)

// EventDeduper suppresses redelivered chat events. An event id seen within
// the recency window is a duplicate; older entries are purged lazily on each
// call rather than by a background timer.
type EventDeduper struct {
	mu     sync.Mutex
	window time.Duration
	seen   map[string]time.Time
	now    func() time.Time
}

// NewEventDeduper builds a deduper with the given recency window.
func NewEventDeduper(window time.Duration) *EventDeduper {
	return &EventDeduper{
		window: window,
		seen:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// SeenBefore records the event id and reports whether it was already seen
// inside the window.
func (d *EventDeduper) SeenBefore(eventID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	for id, at := range d.seen {
		if now.Sub(at) > d.window {
			delete(d.seen, id)
		}
	}

	if _, ok := d.seen[eventID]; ok {
		return true
	}
	d.seen[eventID] = now
	return false
}
