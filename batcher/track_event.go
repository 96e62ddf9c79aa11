package batcher

import "time"

// Kinds of tracked events.
const (
	KindView  = "view"
	KindClick = "click"
)

// TrackEvent is one observed view or click on a subject.
type TrackEvent struct {
	SubjectID string
	Kind      string
	Timestamp time.Time
}

// AggregatedCount maps "kind subjectID" keys to event totals for one
// flush interval.
type AggregatedCount map[string]uint

// FlushFunc receives the aggregate of one batch.
type FlushFunc func(AggregatedCount)

func aggregate(events []TrackEvent) AggregatedCount {
	agg := make(AggregatedCount)
	for _, e := range events {
		agg[e.Kind+" "+e.SubjectID]++
	}
	return agg
}
