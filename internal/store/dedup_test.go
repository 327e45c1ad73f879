package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventDeduper(t *testing.T) {
	current := time.Unix(1000, 0)
	d := NewEventDeduper(10 * time.Second)
	d.now = func() time.Time { return current }

	assert.False(t, d.SeenBefore("msg-1"), "first delivery is not a duplicate")
	assert.True(t, d.SeenBefore("msg-1"), "redelivery inside the window is suppressed")
	assert.False(t, d.SeenBefore("msg-2"), "distinct ids are independent")

	// Past the window the id is forgotten and accepted again.
	current = current.Add(11 * time.Second)
	assert.False(t, d.SeenBefore("msg-1"))
}

func TestEventDeduperPurgesLazily(t *testing.T) {
	current := time.Unix(1000, 0)
	d := NewEventDeduper(10 * time.Second)
	d.now = func() time.Time { return current }

	for _, id := range []string{"a", "b", "c"} {
		d.SeenBefore(id)
	}
	assert.Len(t, d.seen, 3)

	current = current.Add(time.Minute)
	d.SeenBefore("fresh")
	assert.Len(t, d.seen, 1, "stale entries are dropped on the next call")
}
