package dedup

import "time"

// Check runs the full gate for one inbound token: decode, reconcile
// against the default TTL, re-encode. An absent token is an empty
// ledger. The returned token must be sent back to the client even when
// the view is a duplicate, so expired entries get trimmed out of the
// cookie.
func Check(token, subjectID string, now time.Time) (bool, string) {
	ledger, shouldCount := Reconcile(Decode(token), subjectID, now, TTL)
	return shouldCount, Encode(ledger)
}
