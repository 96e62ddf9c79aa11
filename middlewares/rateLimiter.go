package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"linkstats/cache"
)

// RateLimitRedisStore backs the fixed-window limiter. Left nil (tests,
// single-node dev without Redis), the limiter lets everything through.
var RateLimitRedisStore *cache.RedisStore

// APIRateLimitMiddleware limits each IP to maxRequest calls per minute
// per endpoint. Limiting is advisory on a tracking service: any Redis
// error lets the request pass.
func APIRateLimitMiddleware(maxRequest int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RateLimitRedisStore == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := getIPAddress(r)
			endpoint := r.URL.Path
			key := "rate:" + ip + ":" + endpoint

			ctx := RateLimitRedisStore.Ctx

			count, err := RateLimitRedisStore.Client.Incr(ctx, key).Result()
			if err != nil {
				// In case of error, let the request pass.
				next.ServeHTTP(w, r)
				return
			}
			// If this is the first request, set an expiry of 1 minute.
			if count == 1 {
				RateLimitRedisStore.Client.Expire(ctx, key, time.Minute)
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(maxRequest, 10))
			remaining := maxRequest - count
			if remaining < 0 {
				remaining = 0
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			// Retrieve the TTL for this key.
			ttl, err := RateLimitRedisStore.Client.TTL(ctx, key).Result()
			if err == nil && ttl > 0 {
				w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))
			} else {
				// Fallback if TTL is not available.
				w.Header().Set("X-RateLimit-Reset", "60")
			}

			if count > maxRequest {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte("Rate limit exceeded. Try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
