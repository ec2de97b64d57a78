package notify

import (
	"context"
	"sync"
	"time"
)

const defaultFeedCapacity = 20

// Entry is one delivered notification, oldest first in the feed.
type Entry struct {
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}

// Feed keeps the most recent notifications for one session so the client
// can render them. Bounded; old entries fall off the front.
type Feed struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry
}

// NewFeed builds a feed holding at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultFeedCapacity
	}
	return &Feed{capacity: capacity}
}

func (f *Feed) Notify(ctx context.Context, severity Severity, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries = append(f.entries, Entry{
		Severity: severity,
		Message:  message,
		At:       time.Now().UTC(),
	})
	if len(f.entries) > f.capacity {
		f.entries = f.entries[len(f.entries)-f.capacity:]
	}
	return nil
}

// Recent returns a copy of the buffered entries, oldest first.
func (f *Feed) Recent() []Entry {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out
}
