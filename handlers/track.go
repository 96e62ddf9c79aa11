package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"linkstats/aggregator"
	"linkstats/batcher"
	"linkstats/cache"
	"linkstats/dedup"
	"linkstats/middlewares"
	"linkstats/pubsub"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
)

// Package-level dependencies, wired in main (and swapped in tests).
var (
	Agg       *aggregator.Aggregator
	LinkCache cache.LinkCache
	PS        *pubsub.PubSub
)

const (
	// LedgerCookie carries the dedup ledger between visits. Its 24h
	// absolute lifetime is independent of the 30-minute per-subject
	// window inside the ledger.
	LedgerCookie       = "recent_views"
	ledgerCookieMaxAge = 24 * 60 * 60

	// Storage calls on the tracking path get a short leash; a visitor
	// beacon must never wait on analytics.
	trackTimeout    = 300 * time.Millisecond
	redirectTimeout = 250 * time.Millisecond
)

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// TrackViewHandler records a profile view. Duplicate views within the
// dedup window and aggregator failures both come back as the same ok
// shape: the beacon caller can't act on the difference, and an error
// would only invite retries that double-count.
func TrackViewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]interface{}{"error": "method not allowed"})
		return
	}

	var request struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request payload"})
		return
	}
	if _, err := uuid.Parse(request.ID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid profile id"})
		return
	}

	token := ""
	if c, err := r.Cookie(LedgerCookie); err == nil {
		token = c.Value
	}

	now := time.Now()
	shouldCount, outToken := dedup.Check(token, request.ID, now)
	setLedgerCookie(w, outToken)

	if shouldCount {
		ctx, cancel := context.WithTimeout(r.Context(), trackTimeout)
		defer cancel()
		if err := Agg.IncrementView(ctx, request.ID); err != nil {
			// Fail open: the event is lost, the visitor never sees it.
			middlewares.ErrorLogger.Printf("view increment failed for %s: %v", request.ID, err)
			sentry.CaptureException(err)
		}
		publishEvent(pubsub.EventProfileViewed, request.ID, now)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "ok"})
}

func setLedgerCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LedgerCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   ledgerCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("COOKIE_SECURE") == "true",
	})
}

func publishEvent(event, subjectID string, at time.Time) {
	if PS == nil {
		return
	}
	err := PS.Publish(event, map[string]interface{}{
		"subject_id": subjectID,
		"kind":       eventKind(event),
		"at":         at.Unix(),
	})
	if err != nil {
		middlewares.DebugLogger.Printf("publish %s failed: %v", event, err)
	}
}

func eventKind(event string) string {
	if event == pubsub.EventLinkClicked {
		return batcher.KindClick
	}
	return batcher.KindView
}
