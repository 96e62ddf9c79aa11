package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"linkstats/config"
	"linkstats/middlewares"
	"linkstats/models"
	"linkstats/pubsub"
	"linkstats/queue"
	"linkstats/utils"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// linkLookupBreaker opens after repeated DB failures and resets after
// ten seconds, so a struggling database degrades redirects to fast 500s
// instead of stacking up retries.
var linkLookupBreaker = utils.NewCircuitBreaker(3, 10*time.Second)

// RedirectHandler resolves a short link and forwards the visitor. The
// click increment is attempted before responding but never delays the
// redirect beyond its deadline: counting is best effort, redirecting is
// not.
func RedirectHandler(w http.ResponseWriter, r *http.Request) {
	linkID := mux.Vars(r)["id"]
	if _, err := uuid.Parse(linkID); err != nil {
		// Malformed ids get the same answer as unknown ones, and skip
		// storage entirely.
		http.Error(w, "link not found", http.StatusNotFound)
		return
	}

	link, err := lookupLink(linkID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "link not found", http.StatusNotFound)
		return
	}
	if err != nil {
		middlewares.ErrorLogger.Printf("link lookup failed for %s: %v", linkID, err)
		sentry.CaptureException(err)
		http.Error(w, "temporarily unavailable", http.StatusInternalServerError)
		return
	}

	// Count the click, fail open. The visitor leaves either way.
	ctx, cancel := context.WithTimeout(r.Context(), redirectTimeout)
	defer cancel()
	if err := Agg.IncrementClick(ctx, link.ID, link.ProfileID); err != nil {
		middlewares.ErrorLogger.Printf("click increment failed for %s: %v", link.ID, err)
		sentry.CaptureException(err)
	}
	publishEvent(pubsub.EventLinkClicked, link.ID, time.Now())

	http.Redirect(w, r, link.URL, http.StatusFound)
}

// lookupLink checks the cache first and falls back to the database
// behind the retry/breaker guard. Cache fills happen off the hot path
// via the task queue.
func lookupLink(linkID string) (models.Link, error) {
	if LinkCache != nil {
		if link, err := LinkCache.Get(linkID); err == nil {
			return link, nil
		}
	}

	var link models.Link
	var notFound bool
	// Not-found is an answer, not a failure: it must not trip the
	// breaker or burn retries.
	fetchOp := func() error {
		err := config.DB.
			Where("id = ? AND deleted_at IS NULL", linkID).
			First(&link).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound = true
			return nil
		}
		return err
	}
	if err := utils.RetryWithCircuitBreaker(linkLookupBreaker, fetchOp, 3, 100*time.Millisecond); err != nil {
		return models.Link{}, err
	}
	if notFound {
		return models.Link{}, gorm.ErrRecordNotFound
	}

	if LinkCache != nil {
		queue.Enqueue(func() {
			if err := LinkCache.Set(linkID, link); err != nil {
				middlewares.DebugLogger.Printf("cache fill failed for %s: %v", linkID, err)
			}
		})
	}
	return link, nil
}
