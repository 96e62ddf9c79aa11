package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"linkstats/aggregator"
	"linkstats/cache"
	"linkstats/config"
	"linkstats/handlers"
	middleware "linkstats/middlewares"
	"linkstats/pubsub"
	"linkstats/queue"

	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
)

func main() {
	// To initialize Sentry's handler, you need to initialize Sentry itself beforehand
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              os.Getenv("SENTRY_DSN"),
		TracesSampleRate: 1.0,
	}); err != nil {
		log.Printf("Sentry initialization failed: %v", err)
	}
	sentryHandler := sentryhttp.New(sentryhttp.Options{})
	defer sentry.Flush(2 * time.Second)

	if err := config.InitDB(); err != nil {
		log.Fatalf("Failed to initialize the database: %v", err)
	}
	handlers.Agg = aggregator.New(config.DB)

	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisStore, err := cache.NewRedisStore(redisAddr, os.Getenv("REDIS_PASSWORD"), 0)
	if err != nil {
		log.Fatalf("Failed to initialize Redis cache: %v", err)
	}
	handlers.LinkCache = redisStore
	handlers.PS = pubsub.NewPubSub(redisStore)
	middleware.RateLimitRedisStore = redisStore

	// Background worker for cache fills queued off the redirect path.
	queue.StartWorker()

	// Initialize the router
	r := mux.NewRouter()

	r.Use(middleware.LoggingMiddleware)
	r.Use(sentryHandler.Handle)
	r.Use(middleware.SentryTagMiddleware)
	r.Use(middleware.ResponseTimeMiddleware)

	r.Handle("/track", middleware.APIRateLimitMiddleware(50)(http.HandlerFunc(handlers.TrackViewHandler))).Methods("POST")
	r.Handle("/r/{id}", middleware.APIRateLimitMiddleware(100)(http.HandlerFunc(handlers.RedirectHandler))).Methods("GET")
	r.HandleFunc("/stats/timeline", handlers.TimelineHandler).Methods("GET")
	r.HandleFunc("/health", handlers.HealthHandler).Methods("GET")

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server is running on http://localhost:%s", port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}
