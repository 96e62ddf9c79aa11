package dedup

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func TestReconcileCountsFirstViewOnly(t *testing.T) {
	var ledger Ledger

	ledger, ok := Reconcile(ledger, "subject-a", testNow, TTL)
	if !ok {
		t.Fatal("first view should count")
	}

	// Repeats inside the window never count, however many there are.
	for i := 1; i <= 5; i++ {
		at := testNow.Add(time.Duration(i) * time.Minute)
		var counted bool
		ledger, counted = Reconcile(ledger, "subject-a", at, TTL)
		if counted {
			t.Fatalf("view %d within window counted", i)
		}
	}

	// Once the window elapses the subject is counted again.
	ledger, ok = Reconcile(ledger, "subject-a", testNow.Add(TTL+time.Minute), TTL)
	if !ok {
		t.Fatal("view after window should count")
	}
	if len(ledger) != 1 {
		t.Fatalf("expected single entry, got %d", len(ledger))
	}
	if got := ledger[0].RecordedAt; !got.Equal(testNow.Add(TTL + time.Minute)) {
		t.Errorf("entry not restamped, got %v", got)
	}
}

func TestReconcileBoundaryIsNotExpired(t *testing.T) {
	ledger := Ledger{{SubjectID: "s", RecordedAt: testNow}}

	// Exactly TTL later the entry is not yet older than the threshold.
	_, ok := Reconcile(ledger, "s", testNow.Add(TTL), TTL)
	if ok {
		t.Error("entry exactly at the threshold should still suppress")
	}
}

func TestReconcileExpiresOtherSubjects(t *testing.T) {
	ledger := Ledger{
		{SubjectID: "old-1", RecordedAt: testNow.Add(-2 * TTL)},
		{SubjectID: "old-2", RecordedAt: testNow.Add(-TTL - time.Second)},
		{SubjectID: "fresh", RecordedAt: testNow.Add(-time.Minute)},
	}

	ledger, ok := Reconcile(ledger, "new", testNow, TTL)
	if !ok {
		t.Fatal("unseen subject should count")
	}
	if len(ledger) != 2 {
		t.Fatalf("expected expired entries evicted, got %d entries", len(ledger))
	}
	if ledger[0].SubjectID != "fresh" || ledger[1].SubjectID != "new" {
		t.Errorf("unexpected ledger order: %v", ledger)
	}
}

func TestReconcileCapEvictsOldestFirst(t *testing.T) {
	var ledger Ledger
	for i := 0; i < MaxEntries; i++ {
		ledger = append(ledger, Entry{
			SubjectID:  fmt.Sprintf("s-%02d", i),
			RecordedAt: testNow.Add(time.Duration(i) * time.Second),
		})
	}

	ledger, ok := Reconcile(ledger, "overflow", testNow.Add(time.Minute), TTL)
	if !ok {
		t.Fatal("new subject should count")
	}
	if len(ledger) != MaxEntries {
		t.Fatalf("cap exceeded: %d entries", len(ledger))
	}
	if ledger[0].SubjectID != "s-01" {
		t.Errorf("oldest entry should be evicted, front is %s", ledger[0].SubjectID)
	}
	if ledger[MaxEntries-1].SubjectID != "overflow" {
		t.Errorf("new entry should be appended last, got %s", ledger[MaxEntries-1].SubjectID)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var ledger Ledger
	for i := 0; i < 7; i++ {
		var counted bool
		ledger, counted = Reconcile(ledger, fmt.Sprintf("subject-%d", i), testNow.Add(time.Duration(i)*time.Second), TTL)
		if !counted {
			t.Fatalf("subject-%d should count", i)
		}
	}

	decoded := Decode(Encode(ledger))
	if len(decoded) != len(ledger) {
		t.Fatalf("round trip lost entries: %d != %d", len(decoded), len(ledger))
	}
	for i := range ledger {
		if decoded[i].SubjectID != ledger[i].SubjectID {
			t.Errorf("entry %d subject mismatch: %s != %s", i, decoded[i].SubjectID, ledger[i].SubjectID)
		}
		if !decoded[i].RecordedAt.Equal(ledger[i].RecordedAt) {
			t.Errorf("entry %d timestamp mismatch", i)
		}
	}
}

func TestDecodeGarbage(t *testing.T) {
	cases := []string{
		"",
		"not a token",
		"|||",
		":123|:456",
		"abc:notatime",
		"abc",
		strings.Repeat("x", 5000),
	}
	for _, c := range cases {
		if got := Decode(c); len(got) != 0 {
			t.Errorf("Decode(%q) = %v, want empty", c, got)
		}
	}

	// A valid entry survives surrounding junk.
	token := "junk|good:1700000000|:bad"
	got := Decode(token)
	if len(got) != 1 || got[0].SubjectID != "good" {
		t.Errorf("Decode(%q) = %v, want the one valid entry", token, got)
	}
}

func TestCheckRefreshesTokenOnDuplicate(t *testing.T) {
	counted, token := Check("", "subject-a", testNow)
	if !counted {
		t.Fatal("first check should count")
	}

	stale := Encode(Ledger{
		{SubjectID: "gone", RecordedAt: testNow.Add(-2 * TTL)},
		{SubjectID: "subject-a", RecordedAt: testNow},
	})
	counted, token = Check(stale, "subject-a", testNow.Add(time.Minute))
	if counted {
		t.Fatal("duplicate within window counted")
	}
	if strings.Contains(token, "gone") {
		t.Error("expired entry should be trimmed from the refreshed token")
	}
	if !strings.Contains(token, "subject-a") {
		t.Error("live entry missing from refreshed token")
	}
}
