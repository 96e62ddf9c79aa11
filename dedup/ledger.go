package dedup

import (
	"strconv"
	"strings"
	"time"
)

const (
	// MaxEntries caps the ledger so the cookie stays small no matter how
	// many profiles a visitor walks through.
	MaxEntries = 50

	// TTL is the window within which a repeat view of the same subject
	// is not recounted.
	TTL = 30 * time.Minute

	entrySep = "|"
	fieldSep = ":"
)

// Entry records that a subject was counted at a point in time.
type Entry struct {
	SubjectID  string
	RecordedAt time.Time
}

// Ledger is an ordered, capacity-bounded list of recently counted
// subjects. It is carried between client and server inside a cookie, so
// it is the visitor's own dedup state: two tabs racing with stale
// copies of the same cookie can still double-count a view. That race is
// accepted; the ledger only guarantees "at most one count per subject
// per TTL window" for requests that round-trip the same token.
type Ledger []Entry

// Decode parses a transport token back into a ledger. Entries that
// don't parse (missing fields, empty subject, bad timestamp) are
// dropped silently; garbage input yields an empty ledger, never an
// error.
func Decode(token string) Ledger {
	if token == "" {
		return nil
	}

	var ledger Ledger
	for _, raw := range strings.Split(token, entrySep) {
		fields := strings.SplitN(raw, fieldSep, 2)
		if len(fields) != 2 || fields[0] == "" {
			continue
		}
		secs, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			continue
		}
		ledger = append(ledger, Entry{
			SubjectID:  fields[0],
			RecordedAt: time.Unix(secs, 0),
		})
	}
	return ledger
}

// Encode serializes the ledger in order. Timestamps are unix seconds,
// so the token only contains cookie-safe bytes.
func Encode(ledger Ledger) string {
	parts := make([]string, 0, len(ledger))
	for _, e := range ledger {
		parts = append(parts, e.SubjectID+fieldSep+strconv.FormatInt(e.RecordedAt.Unix(), 10))
	}
	return strings.Join(parts, entrySep)
}

// Reconcile decides whether a view of subjectID should be counted now,
// and returns the ledger to hand back to the client.
//
// Entries older than now-ttl are expired lazily for every subject, not
// just the one being checked, which keeps the ledger small without a
// sweep. If the subject still has a live entry the view is a duplicate
// and the ledger keeps that entry's original timestamp. Otherwise a
// fresh entry is stamped at now and the oldest entries are evicted
// until the ledger fits the cap.
func Reconcile(ledger Ledger, subjectID string, now time.Time, ttl time.Duration) (Ledger, bool) {
	threshold := now.Add(-ttl)

	next := make(Ledger, 0, len(ledger)+1)
	live := false
	for _, e := range ledger {
		if e.RecordedAt.Before(threshold) {
			continue // expired, any subject
		}
		if e.SubjectID == subjectID {
			// Collapse duplicates a mangled token may carry.
			if live {
				continue
			}
			live = true
		}
		next = append(next, e)
	}

	if live {
		return next, false
	}

	next = append(next, Entry{SubjectID: subjectID, RecordedAt: now})
	if len(next) > MaxEntries {
		next = next[len(next)-MaxEntries:]
	}
	return next, true
}
