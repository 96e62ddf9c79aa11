package batcher

import (
	"sync"
	"time"
)

// TimeBatcher collects TrackEvents and flushes every flushInterval.
type TimeBatcher struct {
	mu            sync.Mutex
	events        []TrackEvent
	flushInterval time.Duration
	flush         FlushFunc
	stopCh        chan struct{}
}

// NewTimeBatcher returns a TimeBatcher that hands each interval's
// aggregate to flush. Pass flushInterval=0 to disable time-based
// flushing.
func NewTimeBatcher(flushInterval time.Duration, flush FlushFunc) *TimeBatcher {
	return &TimeBatcher{
		events:        []TrackEvent{},
		flushInterval: flushInterval,
		flush:         flush,
		stopCh:        make(chan struct{}),
	}
}

// Start begins the background ticker.  Call Stop() to end it.
func (b *TimeBatcher) Start() {
	if b.flushInterval <= 0 {
		return
	}
	ticker := time.NewTicker(b.flushInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				b.mu.Lock()
				b.flushLocked()
				b.mu.Unlock()
			case <-b.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the background ticker.
func (b *TimeBatcher) Stop() {
	close(b.stopCh)
}

// Enqueue adds an event; it will be included in the next flush.
func (b *TimeBatcher) Enqueue(evt TrackEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evt)
}

// Flush forces out whatever is pending, regardless of the ticker.
func (b *TimeBatcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushLocked()
}

// flushLocked assumes b.mu is held.
func (b *TimeBatcher) flushLocked() {
	if len(b.events) == 0 {
		return
	}
	b.flush(aggregate(b.events))
	b.events = b.events[:0]
}
