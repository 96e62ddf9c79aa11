package main

import (
	"log"
	"os"
	"time"

	"linkstats/batcher"
	"linkstats/cache"
	"linkstats/middlewares"
	"linkstats/pubsub"
)

// statsworker tails the tracking event channel and writes per-interval
// traffic summaries to the audit log. It observes; the web process's
// synchronous increments remain the source of truth for counters.
func main() {
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisStore, err := cache.NewRedisStore(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	b := batcher.NewTimeBatcher(30*time.Second, func(agg batcher.AggregatedCount) {
		for key, n := range agg {
			middlewares.AuditLogger.Printf("interval traffic: %s x%d", key, n)
		}
	})
	b.Start()
	defer b.Stop()

	ps := pubsub.NewPubSub(redisStore)
	enqueue := func(data map[string]interface{}) {
		evt, ok := eventFromPayload(data)
		if !ok {
			return
		}
		b.Enqueue(evt)
	}
	ps.Subscribe(pubsub.EventProfileViewed, enqueue)
	ps.Subscribe(pubsub.EventLinkClicked, enqueue)

	log.Println("statsworker listening for tracking events")
	select {}
}

func eventFromPayload(data map[string]interface{}) (batcher.TrackEvent, bool) {
	subject, ok := data["subject_id"].(string)
	if !ok || subject == "" {
		return batcher.TrackEvent{}, false
	}
	kind, _ := data["kind"].(string)
	if kind != batcher.KindView && kind != batcher.KindClick {
		return batcher.TrackEvent{}, false
	}
	at := time.Now()
	if secs, ok := data["at"].(float64); ok {
		at = time.Unix(int64(secs), 0)
	}
	return batcher.TrackEvent{SubjectID: subject, Kind: kind, Timestamp: at}, true
}
