// Package carousel arranges already-fetched feedback records for rotating
// displays. Everything here works on in-memory copies; nothing touches storage.
package carousel

import (
	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/google/uuid"
)

// Rotate returns a copy of items rotated left by n positions. Negative n
// rotates right.
func Rotate(items []feedback.Record, n int) []feedback.Record {
	out := make([]feedback.Record, len(items))
	if len(items) == 0 {
		return out
	}
	k := ((n % len(items)) + len(items)) % len(items)
	copy(out, items[k:])
	copy(out[len(items)-k:], items[:k])
	return out
}

// Pad repeats items cyclically until the result holds at least min entries.
// Repeated entries get a fresh throwaway ID so display keys stay unique.
func Pad(items []feedback.Record, min int) []feedback.Record {
	out := make([]feedback.Record, len(items), max(len(items), min))
	copy(out, items)
	if len(items) == 0 {
		return out
	}
	for i := 0; len(out) < min; i++ {
		dup := items[i%len(items)]
		dup.ID = uuid.NewString()
		out = append(out, dup)
	}
	return out
}

// Carousel tracks a cursor over a fixed slice of records.
type Carousel struct {
	items []feedback.Record
	pos   int
}

// New builds a carousel over a copy of items, padded to at least min entries.
func New(items []feedback.Record, min int) *Carousel {
	return &Carousel{items: Pad(items, min)}
}

// Len is the number of entries, including padding.
func (c *Carousel) Len() int { return len(c.items) }

// Current returns the entry under the cursor.
func (c *Carousel) Current() (feedback.Record, bool) {
	if len(c.items) == 0 {
		return feedback.Record{}, false
	}
	return c.items[c.pos], true
}

// Next advances the cursor, wrapping at the end.
func (c *Carousel) Next() (feedback.Record, bool) {
	if len(c.items) == 0 {
		return feedback.Record{}, false
	}
	c.pos = (c.pos + 1) % len(c.items)
	return c.items[c.pos], true
}

// Prev moves the cursor back, wrapping at the start.
func (c *Carousel) Prev() (feedback.Record, bool) {
	if len(c.items) == 0 {
		return feedback.Record{}, false
	}
	c.pos = (c.pos - 1 + len(c.items)) % len(c.items)
	return c.items[c.pos], true
}

// Window returns up to k entries starting at the cursor.
func (c *Carousel) Window(k int) []feedback.Record {
	if k > len(c.items) {
		k = len(c.items)
	}
	if k < 0 {
		k = 0
	}
	return Rotate(c.items, c.pos)[:k]
}
