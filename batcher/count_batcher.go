package batcher

import "sync"

// CountBatcher collects TrackEvents and flushes whenever count ≥ threshold.
type CountBatcher struct {
	mu        sync.Mutex
	events    []TrackEvent
	threshold int
	flush     FlushFunc
}

// NewCountBatcher returns a CountBatcher that flushes when
// len(events) >= threshold.  Pass threshold=0 to disable.
func NewCountBatcher(threshold int, flush FlushFunc) *CountBatcher {
	return &CountBatcher{
		events:    make([]TrackEvent, 0, threshold),
		threshold: threshold,
		flush:     flush,
	}
}

// Enqueue adds an event and triggers flush if the threshold is reached.
func (b *CountBatcher) Enqueue(evt TrackEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.events = append(b.events, evt)
	if b.threshold > 0 && len(b.events) >= b.threshold {
		b.flushLocked()
	}
}

// flushLocked assumes b.mu is held.
func (b *CountBatcher) flushLocked() {
	if len(b.events) == 0 {
		return
	}
	b.flush(aggregate(b.events))
	b.events = b.events[:0]
}
