package pubsub

import (
	"context"
	"encoding/json"
	"log"

	"linkstats/cache"
)

// Channel carries every tracking event; subscribers filter by event name.
const Channel = "tracking_events"

// Event names published by the handlers.
const (
	EventProfileViewed = "profile_viewed"
	EventLinkClicked   = "link_clicked"
)

type HandlerFunc func(data map[string]interface{})

// PubSub fans tracking events out over Redis. Publishing is
// fire-and-forget: a lost event costs one line in the stats worker's
// interval summary, nothing more, so no publisher ever retries.
type PubSub struct {
	redisStore *cache.RedisStore
}

func NewPubSub(redisStore *cache.RedisStore) *PubSub {
	return &PubSub{redisStore: redisStore}
}

// Subscribe runs handler for every event with the given name. The
// subscription loop runs in its own goroutine for the life of the
// connection.
func (ps *PubSub) Subscribe(event string, handler HandlerFunc) {
	go func() {
		sub := ps.redisStore.Client.Subscribe(ps.redisStore.Ctx, Channel)
		ch := sub.Channel()

		for msg := range ch {
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Println("pubsub decode error:", err)
				continue
			}

			if evt, ok := payload["event"].(string); ok && evt == event {
				if data, ok := payload["data"].(map[string]interface{}); ok {
					handler(data)
				}
			}
		}
	}()
}

// Publish sends an event to the channel.
func (ps *PubSub) Publish(event string, data map[string]interface{}) error {
	payload := map[string]interface{}{
		"event": event,
		"data":  data,
	}

	bytes, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return ps.redisStore.Client.Publish(context.Background(), Channel, bytes).Err()
}
